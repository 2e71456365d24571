package repository

import "context"

// SchemaRepository owns the lifecycle of the translation and miss tables.
type SchemaRepository interface {
	Create(ctx context.Context) error
	Drop(ctx context.Context) error
	Recreate(ctx context.Context) error
}
