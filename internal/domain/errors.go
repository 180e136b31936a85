package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidProject  = errors.New("invalid project")
	ErrInvalidTask     = errors.New("invalid task")
	ErrForbidden       = errors.New("insufficient permissions")
)
