package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
	pkgQdrant "customer-support-agent/pkg/qdrant"
)

const (
	payloadPassageID = "passage_id"
	payloadContent   = "content"
	payloadSource    = "source"
)

// passageNamespace derives Qdrant point ids, which must be UUIDs.
var passageNamespace = uuid.MustParse("3c1d7a52-7f0e-4c55-9a0b-5b8f1f0f7a10")

func pointID(passageID string) string {
	return uuid.NewSHA1(passageNamespace, []byte(passageID)).String()
}

func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]knowledge.Passage, error) {
	if opt.Query == "" {
		return nil, repository.ErrEmptyQuery
	}
	if opt.Limit <= 0 {
		return nil, repository.ErrInvalidLimit
	}

	vectors, err := r.embedder.Embed(ctx, []string{opt.Query})
	if err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to embed query: %v", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	resp, err := r.client.SearchPoints(ctx, r.collection, pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       opt.Limit,
		WithPayload: true,
	})
	if err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to search: %v", err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	out := make([]knowledge.Passage, 0, len(resp.Result))
	for _, scored := range resp.Result {
		content, ok := scored.Payload[payloadContent].(string)
		if !ok {
			r.l.Warnf(ctx, "qdrant repository: point %v has no content payload", scored.ID)
			continue
		}
		id, _ := scored.Payload[payloadPassageID].(string)
		source, _ := scored.Payload[payloadSource].(string)
		out = append(out, knowledge.Passage{ID: id, Content: content, Source: source, Score: scored.Score})
	}
	return out, nil
}

func (r *implRepository) Upsert(ctx context.Context, opt repository.UpsertOptions) error {
	if len(opt.Passages) == 0 {
		return nil
	}

	texts := make([]string, len(opt.Passages))
	for i, p := range opt.Passages {
		texts[i] = p.Content
	}
	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed passages: %w", err)
	}

	points := make([]pkgQdrant.Point, len(opt.Passages))
	for i, p := range opt.Passages {
		points[i] = pkgQdrant.Point{
			ID:     pointID(p.ID),
			Vector: vectors[i],
			Payload: map[string]any{
				payloadPassageID: p.ID,
				payloadContent:   p.Content,
				payloadSource:    p.Source,
			},
		}
	}

	if err := r.client.UpsertPoints(ctx, r.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to upsert: %v", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	r.l.Infof(ctx, "qdrant repository: upserted %d passage(s)", len(points))
	return nil
}

// Count is not tracked for Qdrant; it reports -1.
func (r *implRepository) Count(ctx context.Context) (int, error) {
	return -1, nil
}
