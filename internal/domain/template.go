package domain

import "time"

// DescriptionTemplate is a saved writing template from the template library.
type DescriptionTemplate struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Tone        Tone       `json:"tone"`
	Category    string     `json:"category"`
	Structure   string     `json:"structure"`
	Keywords    Features   `json:"keywords"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
