package models

import (
	"time"

	"github.com/google/uuid"
)

// FederalState groups regions (e.g. an Austrian Bundesland).
type FederalState struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Region is the unit of locality used for employee and shift visibility.
type Region struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description" db:"description"`
	FederalStateID   uuid.UUID `json:"federal_state" db:"federal_state_id"`
	FederalStateName string    `json:"federal_state_name"` // Read-only, joined from federal_states
	SortOrder        int       `json:"sort_order" db:"sort_order"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	FederalStateSortOrder int `json:"-"`
}
