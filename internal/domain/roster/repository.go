package roster

import "context"

// Repository loads and rewrites the whole roster collection.
type Repository interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}
