package conversation

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is everything persisted for one conversation between requests.
type State struct {
	ConversationID        string    `json:"conversation_id"`
	Messages              []Message `json:"messages"`
	LastIntent            string    `json:"last_intent,omitempty"`
	LastDecision          string    `json:"last_decision,omitempty"`
	PendingClarification  bool      `json:"pending_clarification"`
	ClarificationQuestion string    `json:"clarification_question,omitempty"`
	PendingApproval       bool      `json:"pending_approval"`

	// Revision is assigned by the store: 0 for a state never saved, then
	// bumped by one on every successful Save. It is not part of the payload.
	Revision int64 `json:"-"`
}

// NewState returns the default state of a conversation seen for the first time.
func NewState(conversationID string) State {
	return State{
		ConversationID: conversationID,
		Messages:       []Message{},
	}
}

// Clone returns a deep copy so callers can mutate freely.
func (s State) Clone() State {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// Append adds a message to the transcript.
func (s *State) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// ClearClarification drops any deferred clarification question.
func (s *State) ClearClarification() {
	s.PendingClarification = false
	s.ClarificationQuestion = ""
}

// PendingApproval marks a conversation suspended until a human decides.
type PendingApproval struct {
	ConversationID string    `json:"conversation_id"`
	Token          string    `json:"token"`
	RequestedAt    time.Time `json:"requested_at"`
	Payload        string    `json:"payload"`
}
