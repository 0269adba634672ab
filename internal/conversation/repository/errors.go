package repository

import "errors"

var (
	ErrFailedToLoad   = errors.New("failed to load conversation")
	ErrFailedToSave   = errors.New("failed to save conversation")
	ErrInvalidOptions = errors.New("invalid save options")
)
