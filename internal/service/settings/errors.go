package settings

import "errors"

var (
	ErrNotConnected = errors.New("shopify store and api key are required")
	ErrNotFound     = errors.New("uploaded file not found")
	ErrValidation   = errors.New("validation error")
)
