package domain

import "errors"

// Domain errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNoSession        = errors.New("no active session")
	ErrNotFound         = errors.New("resource not found")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoFileSelected   = errors.New("no file selected")
)
