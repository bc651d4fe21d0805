package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultThoughtName is the author name given to thoughts posted without one.
const DefaultThoughtName = "Anonymous"

// Message length bounds, counted in characters.
const (
	MinMessageLength = 5
	MaxMessageLength = 140
)

// Thought is a short message posted to the board. Hearts only ever grows,
// through Store.IncrementHearts; every other field is fixed at creation.
type Thought struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Message   string    `db:"message"    json:"message"   validate:"required,min=5,max=140"`
	Hearts    int       `db:"hearts"     json:"hearts"    validate:"gte=0"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewThought builds an unsaved thought with its creation-time defaults:
// zero hearts, the anonymous name when name is blank, and the current time.
// The id is assigned by the store.
func NewThought(message, name string) *Thought {
	if strings.TrimSpace(name) == "" {
		name = DefaultThoughtName
	}
	return &Thought{
		Message:   message,
		Hearts:    0,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
