package tasks

import "errors"

var (
	ErrNotFound         = errors.New("task not found")
	ErrNoTaskAvailable  = errors.New("no task available")
	ErrAlreadySubmitted = errors.New("task already submitted")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTooLarge         = errors.New("upload too large")
	ErrUnsupportedType  = errors.New("unsupported file type")
)
