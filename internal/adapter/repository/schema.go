package repository

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"

	"github.com/eslsoft/atservices/internal/infrastructure/database"
	"github.com/eslsoft/atservices/internal/repository"
)

const (
	tableTranslations = "translations"
	tableMisses       = "misses"
)

var (
	translationColumns = []string{"lemma", "lemma_lang", "translation", "translation_lang"}
	missColumns        = []string{"id", "at", "lemma", "lemma_lang", "translation_lang", "client"}
)

var createStatements = map[string][]string{
	dialect.SQLite: {
		`CREATE TABLE IF NOT EXISTS "translations" (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"lemma" TEXT NOT NULL,
			"lemma_lang" TEXT NOT NULL,
			"translation" TEXT NOT NULL,
			"translation_lang" TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "translation_tuple" ON "translations" ("lemma", "lemma_lang", "translation", "translation_lang")`,
		`CREATE INDEX IF NOT EXISTS "translation_lookup" ON "translations" ("lemma", "lemma_lang", "translation_lang")`,
		`CREATE TABLE IF NOT EXISTS "misses" (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"at" DATETIME NOT NULL,
			"lemma" TEXT NOT NULL,
			"lemma_lang" TEXT NOT NULL,
			"translation_lang" TEXT NOT NULL,
			"client" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS "miss_at" ON "misses" ("at", "id")`,
	},
	dialect.Postgres: {
		`CREATE TABLE IF NOT EXISTS "translations" (
			"id" BIGSERIAL PRIMARY KEY,
			"lemma" TEXT NOT NULL,
			"lemma_lang" VARCHAR(8) NOT NULL,
			"translation" TEXT NOT NULL,
			"translation_lang" VARCHAR(8) NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS "translation_tuple" ON "translations" ("lemma", "lemma_lang", "translation", "translation_lang")`,
		`CREATE INDEX IF NOT EXISTS "translation_lookup" ON "translations" ("lemma", "lemma_lang", "translation_lang")`,
		`CREATE TABLE IF NOT EXISTS "misses" (
			"id" BIGSERIAL PRIMARY KEY,
			"at" TIMESTAMPTZ NOT NULL,
			"lemma" TEXT NOT NULL,
			"lemma_lang" VARCHAR(8) NOT NULL,
			"translation_lang" VARCHAR(8) NOT NULL,
			"client" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS "miss_at" ON "misses" ("at", "id")`,
	},
}

// Reverse creation order.
var dropStatements = []string{
	`DROP TABLE IF EXISTS "misses"`,
	`DROP TABLE IF EXISTS "translations"`,
}

type schemaRepository struct {
	store *database.Store
}

// NewSchemaRepository returns the DDL owner for the translation store.
func NewSchemaRepository(store *database.Store) repository.SchemaRepository {
	return &schemaRepository{store: store}
}

func (r *schemaRepository) Create(ctx context.Context) error {
	stmts, err := r.createStatements()
	if err != nil {
		return err
	}
	return r.exec(ctx, stmts)
}

func (r *schemaRepository) Drop(ctx context.Context) error {
	return r.exec(ctx, dropStatements)
}

// Recreate drops and creates in one transaction so readers never see a half-built schema.
func (r *schemaRepository) Recreate(ctx context.Context) error {
	stmts, err := r.createStatements()
	if err != nil {
		return err
	}
	all := make([]string, 0, len(dropStatements)+len(stmts))
	all = append(all, dropStatements...)
	all = append(all, stmts...)
	return r.exec(ctx, all)
}

func (r *schemaRepository) createStatements() ([]string, error) {
	stmts, ok := createStatements[r.store.Dialect]
	if !ok {
		return nil, fmt.Errorf("no schema for dialect %q", r.store.Dialect)
	}
	return stmts, nil
}

func (r *schemaRepository) exec(ctx context.Context, stmts []string) error {
	return r.store.InTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
