package conversation

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a State for storage.
func Encode(s State) ([]byte, error) {
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	return json.Marshal(s)
}

// Decode parses stored bytes into a State owned by conversationID. Anything
// that does not round-trip into a well-formed State is ErrMalformedState.
func Decode(conversationID string, raw []byte) (State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if s.ConversationID != conversationID {
		return State{}, fmt.Errorf("%w: stored id %q does not match %q", ErrMalformedState, s.ConversationID, conversationID)
	}
	for i, m := range s.Messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return State{}, fmt.Errorf("%w: message %d has role %q", ErrMalformedState, i, m.Role)
		}
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	return s, nil
}
