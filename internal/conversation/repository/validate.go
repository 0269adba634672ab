package repository

import "fmt"

// Validate rejects option combinations no backend can apply.
func (o SaveOptions) Validate() error {
	if o.State.ConversationID == "" {
		return fmt.Errorf("%w: empty conversation id", ErrInvalidOptions)
	}
	if o.PutPending != nil && o.DeletePending {
		return fmt.Errorf("%w: put and delete pending in one write", ErrInvalidOptions)
	}
	if o.PutPending != nil && o.PutPending.ConversationID != o.State.ConversationID {
		return fmt.Errorf("%w: pending approval belongs to %q", ErrInvalidOptions, o.PutPending.ConversationID)
	}
	return nil
}
