package intent

import "context"

// Classifier returns every plausible intent for text, unordered.
// Transport failures wrap ErrClassifierUnavailable; output that does not
// fit the candidate schema wraps ErrUnparseableOutput.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Candidate, error)
}

// Resolver turns text into a Resolution. It never fails.
type Resolver interface {
	Resolve(ctx context.Context, text string) Resolution
}
