package game

import "github.com/google/uuid"

// NewID returns a fresh unique identifier for a session entity.
func NewID() string {
	return uuid.NewString()
}
