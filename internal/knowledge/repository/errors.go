package repository

import "errors"

var (
	ErrEmptyQuery   = errors.New("search query is empty")
	ErrInvalidLimit = errors.New("search limit must be positive")
)
