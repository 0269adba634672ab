package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/support"
)

var approvalNamespace = uuid.MustParse("8f14e45f-ceea-4672-9b6a-7d1f2b0c9e31")

// ApprovalToken derives the approval token of a conversation.
func ApprovalToken(conversationID string) string {
	return uuid.NewSHA1(approvalNamespace, []byte(conversationID)).String()
}

// suspend returns the pending approval to persist. An approval that is
// already pending is returned as stored so its clock does not restart.
func (uc *implUseCase) suspend(ctx context.Context, id, payload string) (conversation.PendingApproval, error) {
	existing, err := uc.repo.GetPendingApproval(ctx, id)
	switch {
	case err == nil:
		uc.l.Infof(ctx, "%s: approval already pending for %s since %s", support.LogPrefixRoute, id, existing.RequestedAt)
		return existing, nil
	case errors.Is(err, conversation.ErrNotFound):
	default:
		return conversation.PendingApproval{}, fmt.Errorf("checking pending approval: %w", err)
	}

	return conversation.PendingApproval{
		ConversationID: id,
		Token:          ApprovalToken(id),
		RequestedAt:    uc.now().UTC(),
		Payload:        payload,
	}, nil
}

// Resume settles the pending refund of a conversation and records the
// verdict as a normal assistant turn.
func (uc *implUseCase) Resume(ctx context.Context, in support.ResumeInput) (support.ResumeOutput, error) {
	id := strings.TrimSpace(in.ConversationID)
	if id == "" {
		return support.ResumeOutput{}, support.ErrMissingConversationID
	}

	unlock, err := uc.locks.Lock(ctx, id)
	if err != nil {
		return support.ResumeOutput{}, err
	}
	defer unlock()

	pending, err := uc.repo.GetPendingApproval(ctx, id)
	if errors.Is(err, conversation.ErrNotFound) {
		return support.ResumeOutput{}, support.ErrNoPendingApproval
	}
	if err != nil {
		return support.ResumeOutput{Outcome: uc.internalError(ctx, support.LogPrefixResume, err)}, nil
	}

	state, err := uc.loadState(ctx, id)
	if err != nil {
		return support.ResumeOutput{Outcome: uc.internalError(ctx, support.LogPrefixResume, err)}, nil
	}

	outcome := support.Outcome{
		FinalAnswer: support.MsgRefundDenied,
		Decision:    support.DecisionRefundDenied,
		Confidence:  support.ConfidenceHumanDecision,
		Intent:      intent.LabelRefund,
	}
	if in.Approved {
		outcome.FinalAnswer = support.MsgRefundApproved
		outcome.Decision = support.DecisionRefundApproved
	}

	state.Append(conversation.RoleAssistant, outcome.FinalAnswer)
	state.LastDecision = string(outcome.Decision)
	state.PendingApproval = false

	if err := ctx.Err(); err != nil {
		return support.ResumeOutput{}, err
	}

	err = uc.repo.Save(ctx, repository.SaveOptions{State: state, DeletePending: true})
	if errors.Is(err, conversation.ErrNotFound) {
		return support.ResumeOutput{}, support.ErrNoPendingApproval
	}
	if err != nil {
		return support.ResumeOutput{Outcome: uc.internalError(ctx, support.LogPrefixResume, err)}, nil
	}

	uc.l.Infof(ctx, "%s: conversation=%s decision=%s token=%s", support.LogPrefixResume, id, outcome.Decision, pending.Token)
	return support.ResumeOutput{Outcome: outcome}, nil
}
