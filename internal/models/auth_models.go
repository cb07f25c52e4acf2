package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole converts a raw value into a Role, rejecting anything outside the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// User represents an employee or administrator (the "profiles" resource).
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	FullName     string     `json:"full_name" db:"full_name"`
	Role         Role       `json:"role" db:"role"`
	RegionID     *uuid.UUID `json:"region" db:"region_id"`
	RegionName   *string    `json:"region_name,omitempty"` // Read-only, joined from regions
	SortOrder    int        `json:"sort_order" db:"sort_order"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	// Used for ordering only; not serialized.
	RegionSortOrder *int `json:"-"`
}

// IsAdmin is derived from Role and never stored.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MarshalJSON adds the derived is_admin flag.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return json.Marshal(struct {
		plain
		IsAdmin bool `json:"is_admin"`
	}{plain(u), u.IsAdmin()})
}

// Sanitized returns a copy without the password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Credentials for login request
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
