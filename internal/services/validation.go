package services

import (
	"fmt"
	"strings"

	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/pkg/utils"
)

const minPasswordLength = 8

// checkDate validates and normalizes a YYYY-MM-DD value in place.
func checkDate(v *ValidationError, field string, value *string) {
	d, err := utils.ParseDate(*value)
	if err != nil {
		v.Add(field, "must be a date in YYYY-MM-DD format")
		return
	}
	*value = d
}

// checkTime validates a HH:MM or HH:MM:SS value and normalizes it to HH:MM:SS in place.
func checkTime(v *ValidationError, field string, value *string) {
	t, err := utils.NormalizeClockTime(*value)
	if err != nil {
		v.Add(field, "must be a time in HH:MM or HH:MM:SS format")
		return
	}
	*value = t
}

// checkTimeRange requires time_from < time_to. Skipped when either value was already rejected.
func checkTimeRange(v *ValidationError, from, to string) {
	if v.has("time_from") || v.has("time_to") {
		return
	}
	if from >= to {
		v.Add("time_to", "must be after time_from")
	}
}

// checkPeriod requires the start instant not to be after the end instant.
func checkPeriod(v *ValidationError, startDate, startTime, endDate, endTime string) {
	if v.has("start_date") || v.has("start_time") || v.has("end_date") || v.has("end_time") {
		return
	}
	if startDate+" "+startTime > endDate+" "+endTime {
		v.Add("end_date", "must not be before the start")
	}
}

func checkRequired(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

func checkRole(v *ValidationError, raw string) models.Role {
	role, err := models.ParseRole(raw)
	if err != nil {
		v.Add("role", "must be admin or employee")
	}
	return role
}

func checkEmail(v *ValidationError, email string) string {
	normalized := utils.NormalizeEmail(email)
	if !utils.IsValidEmail(normalized) {
		v.Add("email", "must be a valid email address")
	}
	return normalized
}

func checkPassword(v *ValidationError, password string) {
	if !utils.IsValidPasswordLength(password, minPasswordLength) {
		v.Add("password", "must be at least 8 characters")
		return
	}
	if len(password) > utils.MaxPasswordBytes {
		v.Add("password", fmt.Sprintf("must be at most %d bytes", utils.MaxPasswordBytes))
	}
}
