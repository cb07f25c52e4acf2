package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultAbsenceStartTime = "00:00:00"
	DefaultAbsenceEndTime   = "23:59:59"
)

// Absence is an employee's time off. Visible to everyone for planning.
type Absence struct {
	ID           uuid.UUID `json:"id" db:"id"`
	EmployeeID   uuid.UUID `json:"employee" db:"employee_id"`
	EmployeeName string    `json:"employee_name"` // Read-only
	StartDate    string    `json:"start_date" db:"start_date"`
	StartTime    string    `json:"start_time" db:"start_time"`
	EndDate      string    `json:"end_date" db:"end_date"`
	EndTime      string    `json:"end_time" db:"end_time"`
	Reason       string    `json:"reason" db:"reason"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
