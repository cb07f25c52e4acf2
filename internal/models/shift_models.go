package models

import (
	"time"

	"github.com/google/uuid"
)

// Shift is a single work assignment. A nil EmployeeID marks an unfilled shift.
type Shift struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	EmployeeID         *uuid.UUID `json:"employee" db:"employee_id"`
	ShiftDate          string     `json:"shift_date" db:"shift_date"` // YYYY-MM-DD
	TimeFrom           string     `json:"time_from" db:"time_from"`   // HH:MM:SS
	TimeTo             string     `json:"time_to" db:"time_to"`
	ClientName         string     `json:"client_name" db:"client_name"`
	Notes              string     `json:"notes" db:"notes"`
	CreatedByID        *uuid.UUID `json:"created_by" db:"created_by"`
	RegionID           *uuid.UUID `json:"region" db:"region_id"`
	SeekingReplacement bool       `json:"seeking_replacement" db:"seeking_replacement"`
	OriginalEmployeeID *uuid.UUID `json:"original_employee" db:"original_employee_id"`
	OpenShift          bool       `json:"open_shift" db:"open_shift"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`

	// Read-only, joined for display
	EmployeeName         *string `json:"employee_name,omitempty"`
	CreatedByName        *string `json:"created_by_name,omitempty"`
	OriginalEmployeeName *string `json:"original_employee_name,omitempty"`
	RegionName           *string `json:"region_name,omitempty"`
}
