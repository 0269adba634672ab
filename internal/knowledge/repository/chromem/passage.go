package chromem

import (
	"context"
	"fmt"

	chromemgo "github.com/philippgille/chromem-go"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
)

const (
	metaSource   = "source"
	embedWorkers = 4
)

func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]knowledge.Passage, error) {
	if opt.Query == "" {
		return nil, repository.ErrEmptyQuery
	}
	if opt.Limit <= 0 {
		return nil, repository.ErrInvalidLimit
	}

	// chromem rejects nResults above the collection size.
	n := min(opt.Limit, r.collection.Count())
	if n == 0 {
		return []knowledge.Passage{}, nil
	}

	results, err := r.collection.Query(ctx, opt.Query, n, nil, nil)
	if err != nil {
		r.l.Errorf(ctx, "chromem repository: query failed: %v", err)
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	out := make([]knowledge.Passage, 0, len(results))
	for _, res := range results {
		out = append(out, knowledge.Passage{
			ID:      res.ID,
			Content: res.Content,
			Source:  res.Metadata[metaSource],
			Score:   float64(res.Similarity),
		})
	}
	r.l.Debugf(ctx, "chromem repository: %d passage(s) for query", len(out))
	return out, nil
}

func (r *implRepository) Upsert(ctx context.Context, opt repository.UpsertOptions) error {
	if len(opt.Passages) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, 0, len(opt.Passages))
	for _, p := range opt.Passages {
		docs = append(docs, chromemgo.Document{
			ID:       p.ID,
			Content:  p.Content,
			Metadata: map[string]string{metaSource: p.Source},
		})
	}

	if err := r.collection.AddDocuments(ctx, docs, embedWorkers); err != nil {
		r.l.Errorf(ctx, "chromem repository: add documents failed: %v", err)
		return fmt.Errorf("adding documents: %w", err)
	}
	r.l.Infof(ctx, "chromem repository: upserted %d passage(s)", len(docs))
	return nil
}

func (r *implRepository) Count(ctx context.Context) (int, error) {
	return r.collection.Count(), nil
}
