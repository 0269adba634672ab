package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/internal/support"
)

// Route handles one user message end to end: load, decide, optionally
// suspend, save. State is written only after the outcome is complete and
// the caller is still waiting.
func (uc *implUseCase) Route(ctx context.Context, in support.RouteInput) (support.RouteOutput, error) {
	id := strings.TrimSpace(in.ConversationID)
	if id == "" {
		return support.RouteOutput{}, support.ErrMissingConversationID
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return completed(support.Outcome{
			FinalAnswer: support.MsgInvalidRequest,
			Decision:    support.DecisionInvalidRequest,
		}), nil
	}

	unlock, err := uc.locks.Lock(ctx, id)
	if err != nil {
		return support.RouteOutput{}, err
	}
	defer unlock()

	state, err := uc.loadState(ctx, id)
	if err != nil {
		return completed(uc.internalError(ctx, support.LogPrefixRoute, err)), nil
	}

	effective := text
	if state.PendingClarification && state.ClarificationQuestion != "" {
		effective = fmt.Sprintf(support.CombinedTextFormat, state.ClarificationQuestion, text)
	}

	res := uc.resolver.Resolve(ctx, effective)
	outcome := uc.decide(ctx, effective, res)
	out := completed(outcome)

	opt := repository.SaveOptions{}
	if outcome.Decision == support.DecisionRefundRequiresApproval && uc.opts.ApprovalGate {
		pending, err := uc.suspend(ctx, id, text)
		if err != nil {
			return completed(uc.internalError(ctx, support.LogPrefixRoute, err)), nil
		}
		opt.PutPending = &pending
		out.Status = support.StatusAwaitingApproval
		out.Approval = &support.Approval{Token: pending.Token, RequestedAt: pending.RequestedAt}
		state.PendingApproval = true
	}

	applyOutcome(&state, text, outcome)

	if err := ctx.Err(); err != nil {
		uc.l.Warnf(ctx, "%s: caller gone before save, dropping turn for %s", support.LogPrefixRoute, id)
		return support.RouteOutput{}, err
	}

	opt.State = state
	if err := uc.repo.Save(ctx, opt); err != nil {
		return completed(uc.internalError(ctx, support.LogPrefixRoute, err)), nil
	}

	uc.l.Infof(ctx, "%s: conversation=%s intent=%s decision=%s status=%s",
		support.LogPrefixRoute, id, outcome.Intent, outcome.Decision, out.Status)
	return out, nil
}

// loadState returns the stored state, or a fresh one for a new
// conversation. Malformed data is an error, never a reset.
func (uc *implUseCase) loadState(ctx context.Context, id string) (conversation.State, error) {
	state, err := uc.repo.Load(ctx, id)
	if errors.Is(err, conversation.ErrNotFound) {
		return conversation.NewState(id), nil
	}
	if err != nil {
		return conversation.State{}, err
	}
	return state, nil
}

// applyOutcome records the turn in state.
func applyOutcome(state *conversation.State, userText string, outcome support.Outcome) {
	state.Append(conversation.RoleUser, userText)
	state.Append(conversation.RoleAssistant, outcome.FinalAnswer)
	state.LastIntent = string(outcome.Intent)
	state.LastDecision = string(outcome.Decision)

	if outcome.Decision.NeedsClarification() {
		state.PendingClarification = true
		if state.ClarificationQuestion == "" {
			state.ClarificationQuestion = userText
		}
		return
	}
	state.ClearClarification()
}

func (uc *implUseCase) internalError(ctx context.Context, prefix string, err error) support.Outcome {
	uc.l.Errorf(ctx, "%s: %v", prefix, err)
	return support.Outcome{
		FinalAnswer: support.MsgInternalError,
		Decision:    support.DecisionInternalError,
		Confidence:  support.ConfidenceInternalError,
		Detail:      err,
	}
}

func completed(o support.Outcome) support.RouteOutput {
	return support.RouteOutput{Status: support.StatusCompleted, Outcome: o}
}
