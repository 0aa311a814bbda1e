package generation

import "errors"

// Sentinel errors for the generation service layer.
var (
	ErrConcurrentGeneration = errors.New("generation already in progress for this subject")
	ErrNotFound             = errors.New("generated description not found")
	ErrValidation           = errors.New("invalid generation request")
	ErrUnknownSEOField      = errors.New("unknown SEO field")
)
