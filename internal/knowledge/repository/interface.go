package repository

import (
	"context"

	"customer-support-agent/internal/knowledge"
)

// PassageRepository stores policy passages and finds the ones closest to
// a query.
type PassageRepository interface {
	Search(ctx context.Context, opt SearchOptions) ([]knowledge.Passage, error)
	Upsert(ctx context.Context, opt UpsertOptions) error
	Count(ctx context.Context) (int, error)
}
