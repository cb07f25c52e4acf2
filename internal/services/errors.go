package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/repositories"
)

var (
	// ErrNotFound is returned for missing records and for records the actor may not see.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the access policy rejects a write.
	ErrPermissionDenied = access.ErrPermissionDenied

	// ErrInvalidCredentials covers unknown emails, wrong passwords and inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for expired, malformed or revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// OrNil returns e when it holds at least one field, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// prefixed returns a copy of e with every field name prefixed, e.g. "shifts[2].".
func (e *ValidationError) prefixed(prefix string) *ValidationError {
	out := &ValidationError{Fields: make(map[string]string, len(e.Fields))}
	for k, v := range e.Fields {
		out.Fields[prefix+k] = v
	}
	return out
}

// mapRepoError translates repository errors. field names the input that a
// duplicate key or dangling reference most likely came from.
func mapRepoError(err error, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return NewValidationError(field, "already exists")
	case errors.Is(err, repositories.ErrInvalidReference):
		return NewValidationError(field, "references a record that does not exist")
	}
	return err
}
