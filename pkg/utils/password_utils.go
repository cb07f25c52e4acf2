package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72

	TempPasswordLength   = 12
	TempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTempPassword draws length characters uniformly from alphabet using crypto/rand.
func GenerateTempPassword(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}
	if alphabet == "" {
		return "", fmt.Errorf("password alphabet must not be empty")
	}
	symbols := []rune(alphabet)
	max := big.NewInt(int64(len(symbols)))
	out := make([]rune, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = symbols[n.Int64()]
	}
	return string(out), nil
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
