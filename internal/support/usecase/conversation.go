package usecase

import (
	"context"
	"errors"
	"strings"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/support"
)

// GetConversation returns the stored transcript and any pending approval.
func (uc *implUseCase) GetConversation(ctx context.Context, in support.GetConversationInput) (support.GetConversationOutput, error) {
	id := strings.TrimSpace(in.ConversationID)
	if id == "" {
		return support.GetConversationOutput{}, support.ErrMissingConversationID
	}

	state, err := uc.repo.Load(ctx, id)
	if errors.Is(err, conversation.ErrNotFound) {
		return support.GetConversationOutput{}, support.ErrConversationNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", support.LogPrefixGetConversation, err)
		return support.GetConversationOutput{}, err
	}

	out := support.GetConversationOutput{State: state}
	pending, err := uc.repo.GetPendingApproval(ctx, id)
	switch {
	case err == nil:
		out.Pending = &pending
	case errors.Is(err, conversation.ErrNotFound):
	default:
		uc.l.Errorf(ctx, "%s: %v", support.LogPrefixGetConversation, err)
		return support.GetConversationOutput{}, err
	}
	return out, nil
}
