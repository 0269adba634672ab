package support

import (
	"time"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/intent"
)

// Decision is the code of a routing outcome.
type Decision string

const (
	DecisionPolicyAnswered                 Decision = "policy_answered"
	DecisionPolicyNeedsClarification       Decision = "policy_needs_clarification"
	DecisionMissingOrderID                 Decision = "missing_order_id"
	DecisionOrderLookup                    Decision = "order_lookup"
	DecisionRefundPolicyAnswered           Decision = "refund_policy_answered"
	DecisionRefundPolicyNeedsClarification Decision = "refund_policy_needs_clarification"
	DecisionRefundRequiresApproval         Decision = "refund_requires_approval"
	DecisionRefundApproved                 Decision = "refund_approved"
	DecisionRefundDenied                   Decision = "refund_denied"
	DecisionFallback                       Decision = "fallback"
	DecisionEscalatedToHuman               Decision = "escalated_to_human"
	DecisionInvalidRequest                 Decision = "invalid_request"
	DecisionInternalError                  Decision = "internal_error"
)

// NeedsClarification reports whether d leaves a question open for the
// next turn.
func (d Decision) NeedsClarification() bool {
	return d == DecisionPolicyNeedsClarification || d == DecisionRefundPolicyNeedsClarification
}

// Outcome is the answer to one request. Detail carries the cause of an
// internal_error for logs and is never serialized.
type Outcome struct {
	FinalAnswer        string       `json:"final_answer"`
	Decision           Decision     `json:"decision"`
	Confidence         float64      `json:"confidence"`
	Escalate           bool         `json:"escalate"`
	Sources            string       `json:"sources,omitempty"`
	NeedsClarification bool         `json:"needs_clarification"`
	Intent             intent.Label `json:"intent,omitempty"`
	Rationale          string       `json:"rationale,omitempty"`
	Detail             error        `json:"-"`
}

// Status tells whether a route call finished or is parked on a human.
type Status string

const (
	StatusCompleted        Status = "completed"
	StatusAwaitingApproval Status = "awaiting_approval"
)

// Approval identifies a suspended refund. Token is stable for a
// conversation until the approval is resolved.
type Approval struct {
	Token       string    `json:"token"`
	RequestedAt time.Time `json:"requested_at"`
}

// Options switch optional routing behaviour. The zero value returns
// refund actions synchronously and never escalates on keywords.
type Options struct {
	ApprovalGate       bool
	EscalationKeywords []string
}

type RouteInput struct {
	ConversationID string
	Text           string
}

// RouteOutput always carries an Outcome. When Status is
// StatusAwaitingApproval the Outcome is informational and Approval is set.
type RouteOutput struct {
	Status   Status
	Outcome  Outcome
	Approval *Approval
}

type ResumeInput struct {
	ConversationID string
	Approved       bool
}

type ResumeOutput struct {
	Outcome Outcome
}

type GetConversationInput struct {
	ConversationID string
}

type GetConversationOutput struct {
	State   conversation.State
	Pending *conversation.PendingApproval
}
