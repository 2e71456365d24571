package repository

import (
	"context"
	"iter"
	"time"

	"github.com/eslsoft/atservices/internal/entity"
)

// MissRepository defines data access for the append-only miss log.
type MissRepository interface {
	Append(ctx context.Context, miss *entity.Miss) error
	// Scan yields misses ordered by at then insertion order. Iteration holds a cursor open.
	Scan(ctx context.Context, query MissQuery) iter.Seq2[entity.Miss, error]
	// DeleteUntil removes misses with at <= until, or every miss when until is nil.
	DeleteUntil(ctx context.Context, until *time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
