package repository

import (
	"context"
	"iter"

	"github.com/eslsoft/atservices/internal/entity"
)

// TranslationRepository defines data access for translation pairs.
type TranslationRepository interface {
	// Create inserts a single row and fails with entity.ErrIntegrityViolation on a duplicate tuple.
	Create(ctx context.Context, t entity.Translation) error
	// InsertMissing consumes rows inside one transaction, skipping tuples that already exist.
	// An error yielded by rows aborts the transaction.
	InsertMissing(ctx context.Context, rows iter.Seq2[entity.Translation, error]) (IngestStats, error)
	Find(ctx context.Context, lemma string, lemmaLang, translationLang entity.Language) ([]entity.Translation, error)
	Count(ctx context.Context) (int64, error)
}
