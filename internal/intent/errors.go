package intent

import "errors"

var (
	ErrClassifierUnavailable = errors.New("intent classifier unavailable")
	ErrUnparseableOutput     = errors.New("unparseable classifier output")
)
