package knowledge

import "context"

// Retriever answers a question from the policy corpus. Backend failures
// wrap ErrRetrieverUnavailable.
type Retriever interface {
	Answer(ctx context.Context, question string) (Answer, error)
}

// UseCase is the retrieval-augmented answerer plus corpus ingestion.
type UseCase interface {
	Retriever
	Ingest(ctx context.Context, docs []Document) (int, error)
}
