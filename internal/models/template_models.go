package models

import (
	"time"

	"github.com/google/uuid"
)

// Weekday numbering used by template shifts, Monday first.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeeklyTemplate is a named, recurring week plan owned by one employee.
type WeeklyTemplate struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	EmployeeID     uuid.UUID       `json:"employee" db:"employee_id"`
	EmployeeName   string          `json:"employee_name"` // Read-only
	Name           string          `json:"name" db:"name"`
	TemplateShifts []TemplateShift `json:"template_shifts"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// TemplateShift is one slot of a weekly template.
type TemplateShift struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TemplateID uuid.UUID `json:"template" db:"template_id"`
	DayOfWeek  int       `json:"day_of_week" db:"day_of_week"`
	TimeFrom   string    `json:"time_from" db:"time_from"`
	TimeTo     string    `json:"time_to" db:"time_to"`
	ClientName string    `json:"client_name" db:"client_name"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Owner of the parent template, resolved by the store.
	TemplateEmployeeID uuid.UUID `json:"-"`
}

// ValidDayOfWeek reports whether d is within Monday..Sunday.
func ValidDayOfWeek(d int) bool {
	return d >= Monday && d <= Sunday
}
