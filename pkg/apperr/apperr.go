// Package apperr holds the errors the playacamp core reports to its callers. The
// transport layer maps these onto status codes.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTeamFull  = errors.New("team is full")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports field level problems with a submitted edit. The
// operation that returns it has not changed any state.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. The first message recorded for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) != 0
}

// OrNil returns e when it carries at least one field error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// IsDomain is true for errors that describe the outcome of an operation rather
// than a storage failure. Retrying the operation won't change them.
func IsDomain(err error) bool {
	var verr *ValidationError
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTeamFull), errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		return true
	case errors.As(err, &verr):
		return true
	default:
		return false
	}
}
