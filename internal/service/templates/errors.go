package templates

import "errors"

// Sentinel errors for the template library.
var (
	ErrNotFound   = errors.New("template not found")
	ErrValidation = errors.New("invalid template")
)
