package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ParseUUID parses a textual UUID, trimming surrounding whitespace.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// ParseDate validates a YYYY-MM-DD date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// NormalizeClockTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeClockTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
}
