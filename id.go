package pianoroll

import "github.com/google/uuid"

// NewID returns a fresh identifier for a note or a track.
func NewID() string {
	return uuid.NewString()
}
