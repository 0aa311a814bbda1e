package catalog

import "errors"

// Sentinel errors for the catalog service layer.
var (
	ErrNotFound        = errors.New("product not found")
	ErrValidation      = errors.New("invalid product")
	ErrFeedUnavailable = errors.New("product feed unavailable")
)
