package repository

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/infrastructure/database"
	"github.com/eslsoft/atservices/internal/repository"
)

type missRepository struct {
	store *database.Store
}

// NewMissRepository returns a MissRepository bound to store.
func NewMissRepository(store *database.Store) repository.MissRepository {
	return &missRepository{store: store}
}

func (r *missRepository) Append(ctx context.Context, miss *entity.Miss) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	miss.At = entity.NormalizeTimestamp(miss.At)
	insert := entsql.Dialect(r.store.Dialect).Insert(tableMisses).
		Columns(missColumns[1:]...).
		Values(miss.At, miss.Lemma, miss.LemmaLang.Code(), miss.TranslationLang.Code(), miss.Client)

	if r.store.Dialect == dialect.Postgres {
		query, args := insert.Returning("id").Query()
		if err := r.store.DB.QueryRowContext(ctx, query, args...).Scan(&miss.ID); err != nil {
			return fmt.Errorf("insert miss: %w", translateError(err))
		}
		return nil
	}

	query, args := insert.Query()
	res, err := r.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert miss: %w", translateError(err))
	}
	if id, err := res.LastInsertId(); err == nil {
		miss.ID = id
	}
	return nil
}

func (r *missRepository) Scan(ctx context.Context, q repository.MissQuery) iter.Seq2[entity.Miss, error] {
	return func(yield func(entity.Miss, error) bool) {
		b := entsql.Dialect(r.store.Dialect)
		selector := b.Select(missColumns...).From(b.Table(tableMisses))
		for _, p := range missPredicates(q) {
			selector.Where(p)
		}
		query, args := selector.OrderBy("at", "id").Query()

		rows, err := r.store.DB.QueryContext(ctx, query, args...)
		if err != nil {
			yield(entity.Miss{}, fmt.Errorf("query misses: %w", translateError(err)))
			return
		}
		defer rows.Close()

		for rows.Next() {
			m, err := scanMiss(rows)
			if err != nil {
				yield(entity.Miss{}, err)
				return
			}
			if !yield(m, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(entity.Miss{}, fmt.Errorf("iterate misses: %w", err))
		}
	}
}

func (r *missRepository) DeleteUntil(ctx context.Context, until *time.Time) (int64, error) {
	del := entsql.Dialect(r.store.Dialect).Delete(tableMisses)
	if until != nil {
		del.Where(entsql.LTE("at", entity.NormalizeTimestamp(*until)))
	}
	query, args := del.Query()

	var deleted int64
	err := r.store.InTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete misses: %w", translateError(err))
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *missRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.store, tableMisses)
}

func missPredicates(q repository.MissQuery) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if len(q.Clients) > 0 {
		preds = append(preds, entsql.In("client", lo.ToAnySlice(q.Clients)...))
	}
	if langs := normalizeCodes(q.LemmaLangs); len(langs) > 0 {
		preds = append(preds, entsql.In("lemma_lang", lo.ToAnySlice(langs)...))
	}
	if langs := normalizeCodes(q.TranslationLangs); len(langs) > 0 {
		preds = append(preds, entsql.In("translation_lang", lo.ToAnySlice(langs)...))
	}
	if q.Lemma != nil {
		preds = append(preds, entsql.EQ("lemma", *q.Lemma))
	}
	if q.LemmaPrefix != nil {
		preds = append(preds, entsql.HasPrefix("lemma", *q.LemmaPrefix))
	}
	if q.Since != nil {
		preds = append(preds, entsql.GTE("at", entity.NormalizeTimestamp(*q.Since)))
	}
	if q.Until != nil {
		preds = append(preds, entsql.LTE("at", entity.NormalizeTimestamp(*q.Until)))
	}
	return preds
}

func scanMiss(rows *sql.Rows) (entity.Miss, error) {
	var (
		m                          entity.Miss
		lemmaLang, translationLang string
	)
	if err := rows.Scan(&m.ID, &m.At, &m.Lemma, &lemmaLang, &translationLang, &m.Client); err != nil {
		return entity.Miss{}, fmt.Errorf("scan miss: %w", err)
	}
	m.At = m.At.UTC()
	m.LemmaLang = entity.Language(lemmaLang)
	m.TranslationLang = entity.Language(translationLang)
	return m, nil
}
