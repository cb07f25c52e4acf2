package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Client is a care recipient. Shifts reference clients by name only.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName is derived from the stored name parts.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// MarshalJSON adds the derived full_name.
func (c Client) MarshalJSON() ([]byte, error) {
	type plain Client
	return json.Marshal(struct {
		plain
		FullName string `json:"full_name"`
	}{plain(c), c.FullName()})
}
