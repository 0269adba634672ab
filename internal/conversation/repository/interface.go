package repository

import (
	"context"

	"customer-support-agent/internal/conversation"
)

// Repository is the durable conversation store.
//
// Implementations must make Save atomic: the state upsert and the pending
// approval change it carries either both apply or neither does.
type Repository interface {
	// Load returns conversation.ErrNotFound when nothing is stored for id,
	// and conversation.ErrMalformedState when stored data cannot be parsed.
	Load(ctx context.Context, conversationID string) (conversation.State, error)
	// Save fails with conversation.ErrStaleState unless opt.State.Revision
	// equals the stored revision, and stores Revision+1 on success.
	Save(ctx context.Context, opt SaveOptions) error
	// Revision returns the stored revision, or conversation.ErrNotFound.
	Revision(ctx context.Context, conversationID string) (int64, error)
	// GetPendingApproval returns conversation.ErrNotFound when none exists.
	GetPendingApproval(ctx context.Context, conversationID string) (conversation.PendingApproval, error)
	Close() error
}
