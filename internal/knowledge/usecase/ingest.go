package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
)

// Ingest splits docs into overlapping chunks and writes them. Chunk ids are
// "<source>#<n>", so re-ingesting a document replaces its chunks.
func (uc *implUseCase) Ingest(ctx context.Context, docs []knowledge.Document) (int, error) {
	if len(docs) == 0 {
		return 0, knowledge.ErrNoDocuments
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(uc.cfg.ChunkSize),
		textsplitter.WithChunkOverlap(uc.cfg.ChunkOverlap),
	)

	var passages []knowledge.Passage
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			uc.l.Warnf(ctx, "%s: skipping empty document %s", knowledge.LogPrefixIngest, doc.Source)
			continue
		}
		chunks, err := splitter.SplitText(doc.Content)
		if err != nil {
			return 0, fmt.Errorf("splitting %s: %w", doc.Source, err)
		}
		for i, chunk := range chunks {
			passages = append(passages, knowledge.Passage{
				ID:      fmt.Sprintf("%s#%d", doc.Source, i),
				Content: chunk,
				Source:  doc.Source,
			})
		}
	}
	if len(passages) == 0 {
		return 0, knowledge.ErrNoDocuments
	}

	if err := uc.repo.Upsert(ctx, repository.UpsertOptions{Passages: passages}); err != nil {
		return 0, fmt.Errorf("storing passages: %w", err)
	}

	uc.l.Infof(ctx, "%s: ingested %d chunk(s) from %d document(s)", knowledge.LogPrefixIngest, len(passages), len(docs))
	return len(passages), nil
}
