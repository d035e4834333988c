package domain

import (
	"time"

	"github.com/google/uuid"
)

// Frame is a stored frame of discernment. Hypotheses keep their
// registration order, which fixes their bit positions.
type Frame struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Hypotheses  []string  `json:"hypotheses"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
