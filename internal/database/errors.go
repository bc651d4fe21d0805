package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrThoughtNotFound is returned when no thought has the requested id.
	ErrThoughtNotFound = errors.New("thought not found")

	// ErrInvalidThoughtID is returned when an id is not a well-formed UUID.
	ErrInvalidThoughtID = errors.New("invalid thought id")
)

// FieldError describes why a single field failed validation.
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError is returned by CreateThought when a thought breaks the
// record constraints. Errors is keyed by field path.
type ValidationError struct {
	Errors map[string]FieldError
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Errors))
	for path := range e.Errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	msgs := make([]string, 0, len(paths))
	for _, path := range paths {
		msgs = append(msgs, fmt.Sprintf("%s: %s", path, e.Errors[path].Message))
	}
	return "thought validation failed: " + strings.Join(msgs, ", ")
}
