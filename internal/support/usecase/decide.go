package usecase

import (
	"context"
	"regexp"
	"strings"

	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/order"
	"customer-support-agent/internal/support"
)

// decide computes the outcome for text given its resolved intent. It
// reads no conversation state.
func (uc *implUseCase) decide(ctx context.Context, text string, res intent.Resolution) support.Outcome {
	chosen := res.Chosen

	var out support.Outcome
	switch {
	case uc.shouldEscalate(text):
		out = support.Outcome{
			FinalAnswer: support.MsgEscalated,
			Decision:    support.DecisionEscalatedToHuman,
			Confidence:  chosen.Confidence,
			Escalate:    true,
		}
	case chosen.Label == intent.LabelPolicy:
		out = uc.decidePolicy(ctx, text)
	case chosen.Label == intent.LabelOrderStatus:
		out = uc.decideOrder(ctx, text, chosen.Confidence)
	case chosen.Label == intent.LabelRefund:
		out = uc.decideRefund(ctx, text, chosen.Confidence)
	default:
		out = support.Outcome{
			FinalAnswer: support.MsgFallback,
			Decision:    support.DecisionFallback,
			Confidence:  chosen.Confidence,
		}
	}

	out.Intent = chosen.Label
	out.Rationale = res.Rationale
	out.NeedsClarification = out.Decision.NeedsClarification()
	return out
}

func (uc *implUseCase) shouldEscalate(text string) bool {
	if len(uc.keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, k := range uc.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func (uc *implUseCase) decidePolicy(ctx context.Context, text string) support.Outcome {
	graded := uc.grader.GradedAnswer(ctx, text)
	if graded.IsWeak {
		return support.Outcome{
			FinalAnswer: withClarifyingPrompt(graded.Answer, support.MsgPolicyClarify),
			Decision:    support.DecisionPolicyNeedsClarification,
			Confidence:  support.ConfidenceNeedsClarification,
			Sources:     graded.Sources,
		}
	}
	return support.Outcome{
		FinalAnswer: graded.Answer,
		Decision:    support.DecisionPolicyAnswered,
		Confidence:  support.ConfidencePolicyAnswered,
		Sources:     graded.Sources,
	}
}

func (uc *implUseCase) decideOrder(ctx context.Context, text string, confidence float64) support.Outcome {
	id, ok := order.ExtractID(text)
	if !ok {
		return support.Outcome{
			FinalAnswer: support.MsgMissingOrderID,
			Decision:    support.DecisionMissingOrderID,
			Confidence:  confidence,
		}
	}
	return support.Outcome{
		FinalAnswer: uc.orders.Status(ctx, id),
		Decision:    support.DecisionOrderLookup,
		Confidence:  confidence,
	}
}

func (uc *implUseCase) decideRefund(ctx context.Context, text string, confidence float64) support.Outcome {
	action, cue := classifyRefund(text)
	uc.l.Debugf(ctx, "%s: refund action=%t cue=%q", support.LogPrefixRoute, action, cue)
	if action {
		return support.Outcome{
			FinalAnswer: support.MsgRefundApproval,
			Decision:    support.DecisionRefundRequiresApproval,
			Confidence:  confidence,
			Escalate:    true,
		}
	}

	graded := uc.grader.GradedAnswer(ctx, text)
	if graded.IsWeak {
		return support.Outcome{
			FinalAnswer: withClarifyingPrompt(graded.Answer, support.MsgRefundClarify),
			Decision:    support.DecisionRefundPolicyNeedsClarification,
			Confidence:  support.ConfidenceNeedsClarification,
			Sources:     graded.Sources,
		}
	}
	return support.Outcome{
		FinalAnswer: graded.Answer,
		Decision:    support.DecisionRefundPolicyAnswered,
		Confidence:  support.ConfidenceRefundPolicyAnswer,
		Sources:     graded.Sources,
	}
}

var (
	refundRequestRe  = wordsRe(`\b(?:`, support.RefundRequestPhrases)
	refundQuestionRe = wordsRe(`^(?:`, support.RefundQuestionStarters)
	refundVerbRe     = wordsRe(`\b(?:`, support.RefundActionVerbs)
)

func wordsRe(open string, phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(open + strings.Join(quoted, "|") + `)\b`)
}

// classifyRefund tells a refund request apart from a question about
// refunds and returns the phrase that decided it. Text matching no list
// counts as a question with an empty cue.
func classifyRefund(text string) (action bool, cue string) {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = strings.ReplaceAll(lower, "’", "'")

	if m := refundRequestRe.FindString(lower); m != "" {
		return true, m
	}
	if m := refundQuestionRe.FindString(lower); m != "" {
		return false, m
	}
	if m := refundVerbRe.FindString(lower); m != "" {
		return true, m
	}
	return false, ""
}

func withClarifyingPrompt(answer, prompt string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return prompt
	}
	return answer + "\n\n" + prompt
}
