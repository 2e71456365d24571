package repository

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/infrastructure/database"
	"github.com/eslsoft/atservices/internal/repository"
)

type translationRepository struct {
	store *database.Store
}

// NewTranslationRepository returns a TranslationRepository bound to store.
func NewTranslationRepository(store *database.Store) repository.TranslationRepository {
	return &translationRepository{store: store}
}

func (r *translationRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.store.Dialect)
}

func (r *translationRepository) Create(ctx context.Context, t entity.Translation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	query, args := r.builder().Insert(tableTranslations).
		Columns(translationColumns...).
		Values(translationValues(t)...).
		Query()
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert translation: %w", translateError(err))
	}
	return nil
}

func (r *translationRepository) InsertMissing(ctx context.Context, rows iter.Seq2[entity.Translation, error]) (repository.IngestStats, error) {
	var stats repository.IngestStats
	// Values are placeholders; the prepared statement is executed with real rows below.
	query, _ := r.builder().Insert(tableTranslations).
		Columns(translationColumns...).
		Values("", "", "", "").
		OnConflict(entsql.ConflictColumns(translationColumns...), entsql.DoNothing()).
		Query()

	err := r.store.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare translation insert: %w", translateError(err))
		}
		defer stmt.Close()

		for t, err := range rows {
			if err != nil {
				return err
			}
			res, err := stmt.ExecContext(ctx, translationValues(t)...)
			if err != nil {
				return fmt.Errorf("insert translation %q: %w", t.Lemma, translateError(err))
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if n == 0 {
				stats.Skipped++
			} else {
				stats.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return repository.IngestStats{}, err
	}
	return stats, nil
}

func (r *translationRepository) Find(ctx context.Context, lemma string, lemmaLang, translationLang entity.Language) ([]entity.Translation, error) {
	b := r.builder()
	t := b.Table(tableTranslations)
	query, args := b.Select(t.C("lemma"), t.C("lemma_lang"), t.C("translation"), t.C("translation_lang")).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("lemma"), lemma),
			entsql.EQ(t.C("lemma_lang"), lemmaLang.Code()),
			entsql.EQ(t.C("translation_lang"), translationLang.Code()),
		)).
		OrderBy(t.C("id")).
		Query()

	rows, err := r.store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", translateError(err))
	}
	defer rows.Close()

	var out []entity.Translation
	for rows.Next() {
		var (
			tr                  entity.Translation
			lemmaLng, transLang string
		)
		if err := rows.Scan(&tr.Lemma, &lemmaLng, &tr.Translation, &transLang); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		tr.LemmaLang = entity.Language(lemmaLng)
		tr.TranslationLang = entity.Language(transLang)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return out, nil
}

func (r *translationRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.store, tableTranslations)
}

func translationValues(t entity.Translation) []any {
	return []any{t.Lemma, t.LemmaLang.Code(), t.Translation, t.TranslationLang.Code()}
}

func countRows(ctx context.Context, store *database.Store, table string) (int64, error) {
	b := entsql.Dialect(store.Dialect)
	query, args := b.Select(entsql.Count("*")).From(b.Table(table)).Query()
	var n int64
	if err := store.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, translateError(err))
	}
	return n, nil
}
