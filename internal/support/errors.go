package support

import "errors"

var (
	ErrMissingConversationID = errors.New("conversation id is required")
	ErrNoPendingApproval     = errors.New("no pending approval for conversation")
	ErrConversationNotFound  = errors.New("conversation not found")
)
