package qdrant

import (
	"context"
	"fmt"

	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/log"
	pkgQdrant "customer-support-agent/pkg/qdrant"
	"customer-support-agent/pkg/voyage"
)

type implRepository struct {
	client     *pkgQdrant.Client
	embedder   voyage.IVoyage
	collection string
	vectorSize int
	l          log.Logger
}

var _ repository.PassageRepository = (*implRepository)(nil)

// New creates a Qdrant-backed passage repository. Call EnsureCollection
// once before the first Upsert.
func New(client *pkgQdrant.Client, embedder voyage.IVoyage, collection string, vectorSize int, l log.Logger) *implRepository {
	return &implRepository{
		client:     client,
		embedder:   embedder,
		collection: collection,
		vectorSize: vectorSize,
		l:          l,
	}
}

// EnsureCollection creates the collection when it does not exist yet.
func (r *implRepository) EnsureCollection(ctx context.Context) error {
	exists, err := r.client.CollectionExists(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", r.collection, err)
	}
	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name:    r.collection,
		Vectors: pkgQdrant.VectorConfig{Size: r.vectorSize, Distance: pkgQdrant.DistanceCosine},
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", r.collection, err)
	}
	r.l.Infof(ctx, "qdrant repository: created collection %s (size=%d)", r.collection, r.vectorSize)
	return nil
}
