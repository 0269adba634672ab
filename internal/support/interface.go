package support

import "context"

// UseCase routes support requests and runs the refund approval protocol.
// Calls for the same conversation are serialized; calls for different
// conversations run independently.
type UseCase interface {
	// Route answers one user message. It returns an error only for a
	// missing conversation id or an abandoned context; every other failure
	// is reported as an internal_error outcome.
	Route(ctx context.Context, in RouteInput) (RouteOutput, error)

	// Resume settles a suspended refund. It fails with ErrNoPendingApproval
	// when nothing is pending.
	Resume(ctx context.Context, in ResumeInput) (ResumeOutput, error)

	GetConversation(ctx context.Context, in GetConversationInput) (GetConversationOutput, error)
}
