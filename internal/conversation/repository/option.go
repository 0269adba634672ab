package repository

import "customer-support-agent/internal/conversation"

// SaveOptions describes one atomic write.
//
// PutPending inserts a pending approval. Inserting a record whose token
// equals the stored one is a no-op; a different token yields
// conversation.ErrPendingExists. DeletePending removes the stored record and
// fails with conversation.ErrNotFound if there is none.
type SaveOptions struct {
	State         conversation.State
	PutPending    *conversation.PendingApproval
	DeletePending bool
}
