package campaign

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("campaign not found")
	ErrValidation = errors.New("invalid campaign")

	// ErrInvalidCampaignType also matches ErrValidation.
	ErrInvalidCampaignType = fmt.Errorf("%w: unsupported campaign type", ErrValidation)
)
