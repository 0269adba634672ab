package knowledge

import "errors"

var (
	ErrRetrieverUnavailable = errors.New("retriever unavailable")
	ErrEmptyQuestion        = errors.New("empty question")
	ErrNoDocuments          = errors.New("no documents to ingest")
)
