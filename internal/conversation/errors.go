package conversation

import "errors"

var (
	ErrNotFound       = errors.New("conversation not found")
	ErrMalformedState = errors.New("malformed conversation state")
	ErrPendingExists  = errors.New("another approval is already pending")
	ErrStaleState     = errors.New("conversation changed since it was loaded")
)
