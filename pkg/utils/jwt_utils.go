package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	tokenIssuer = "care-scheduler-backend"
)

// ErrWrongTokenType is returned when a refresh token is presented as an access token or vice versa.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims defines the JWT claims structure
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates HS256 tokens with a shared secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager creates a TokenManager. Non-positive TTLs fall back to the defaults.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// GenerateAccessToken creates a new JWT access token for a user.
func (m *TokenManager) GenerateAccessToken(userID, email, role string) (string, error) {
	return m.sign(&Claims{UserID: userID, Email: email, Role: role, TokenType: TokenTypeAccess}, m.accessTTL)
}

// GenerateRefreshToken creates a new JWT refresh token for a user.
// Refresh tokens carry only the user id and a longer expiry.
func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, TokenType: TokenTypeRefresh}, m.refreshTTL)
}

func (m *TokenManager) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", claims.TokenType, err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string of the expected type.
func (m *TokenManager) ValidateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongTokenType, expectedType, claims.TokenType)
	}
	return claims, nil
}
