package store

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered unique id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
