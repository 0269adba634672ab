package repository

import "customer-support-agent/internal/knowledge"

// SearchOptions selects at most Limit passages nearest to Query.
type SearchOptions struct {
	Query string
	Limit int
}

// UpsertOptions writes passages, replacing any with the same ID.
type UpsertOptions struct {
	Passages []knowledge.Passage
}
