package http

import (
	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/response"
)

// --- Request DTOs ---

type messageReq struct {
	ConversationID string `json:"-"`
	Text           string `json:"text"`
}

func (r messageReq) toInput() support.RouteInput {
	return support.RouteInput{ConversationID: r.ConversationID, Text: r.Text}
}

type approvalReq struct {
	ConversationID string `json:"-"`
	Approved       *bool  `json:"approved" binding:"required"`
}

func (r approvalReq) toInput() support.ResumeInput {
	return support.ResumeInput{ConversationID: r.ConversationID, Approved: *r.Approved}
}

// --- Response DTOs ---

type outcomeResp struct {
	FinalAnswer        string  `json:"final_answer"`
	Decision           string  `json:"decision"`
	Confidence         float64 `json:"confidence"`
	Escalate           bool    `json:"escalate"`
	Sources            string  `json:"sources,omitempty"`
	NeedsClarification bool    `json:"needs_clarification"`
	Intent             string  `json:"intent,omitempty"`
	Rationale          string  `json:"rationale,omitempty"`
}

func newOutcomeResp(o support.Outcome) outcomeResp {
	return outcomeResp{
		FinalAnswer:        o.FinalAnswer,
		Decision:           string(o.Decision),
		Confidence:         o.Confidence,
		Escalate:           o.Escalate,
		Sources:            o.Sources,
		NeedsClarification: o.NeedsClarification,
		Intent:             string(o.Intent),
		Rationale:          o.Rationale,
	}
}

type approvalResp struct {
	Token       string            `json:"token"`
	RequestedAt response.DateTime `json:"requested_at"`
}

type messageResp struct {
	ConversationID string        `json:"conversation_id"`
	Status         string        `json:"status"`
	Outcome        outcomeResp   `json:"outcome"`
	Approval       *approvalResp `json:"approval,omitempty"`
}

func (h *handler) newMessageResp(id string, out support.RouteOutput) messageResp {
	resp := messageResp{
		ConversationID: id,
		Status:         string(out.Status),
		Outcome:        newOutcomeResp(out.Outcome),
	}
	if out.Approval != nil {
		resp.Approval = &approvalResp{Token: out.Approval.Token, RequestedAt: response.DateTime(out.Approval.RequestedAt)}
	}
	return resp
}

type resolveResp struct {
	ConversationID string      `json:"conversation_id"`
	Status         string      `json:"status"`
	Outcome        outcomeResp `json:"outcome"`
}

func (h *handler) newResolveResp(id string, out support.ResumeOutput) resolveResp {
	return resolveResp{
		ConversationID: id,
		Status:         string(support.StatusCompleted),
		Outcome:        newOutcomeResp(out.Outcome),
	}
}

type messageItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type conversationResp struct {
	ConversationID        string        `json:"conversation_id"`
	Messages              []messageItem `json:"messages"`
	LastIntent            string        `json:"last_intent,omitempty"`
	LastDecision          string        `json:"last_decision,omitempty"`
	PendingClarification  bool          `json:"pending_clarification"`
	ClarificationQuestion string        `json:"clarification_question,omitempty"`
	PendingApproval       *approvalResp `json:"pending_approval,omitempty"`
}

func (h *handler) newConversationResp(out support.GetConversationOutput) conversationResp {
	s := out.State
	items := make([]messageItem, len(s.Messages))
	for i, m := range s.Messages {
		items[i] = messageItem{Role: string(m.Role), Content: m.Content}
	}

	resp := conversationResp{
		ConversationID:        s.ConversationID,
		Messages:              items,
		LastIntent:            s.LastIntent,
		LastDecision:          s.LastDecision,
		PendingClarification:  s.PendingClarification,
		ClarificationQuestion: s.ClarificationQuestion,
	}
	if out.Pending != nil {
		resp.PendingApproval = newPendingResp(*out.Pending)
	}
	return resp
}

func newPendingResp(p conversation.PendingApproval) *approvalResp {
	return &approvalResp{Token: p.Token, RequestedAt: response.DateTime(p.RequestedAt)}
}
