package utils

import (
	"os"
	"strings"
)

// Getenv returns the trimmed value of key, or fallback when it is unset or blank.
func Getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
