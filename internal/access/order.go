package access

import (
	"cmp"
	"slices"

	"care_scheduler_backend/internal/models"
)

// The Sort functions apply the fixed listing order for each kind. They are
// stable, so callers that pass rows in insertion order get insertion order
// as the final tie-break.

func SortFederalStates(s []models.FederalState) {
	slices.SortStableFunc(s, func(a, b models.FederalState) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.Name, b.Name))
	})
}

func SortRegions(s []models.Region) {
	slices.SortStableFunc(s, func(a, b models.Region) int {
		return cmp.Or(
			cmp.Compare(a.FederalStateSortOrder, b.FederalStateSortOrder),
			cmp.Compare(a.SortOrder, b.SortOrder),
			cmp.Compare(a.Name, b.Name),
		)
	})
}

// SortUsers orders by region sort order (unassigned last), then user sort order and name.
func SortUsers(s []models.User) {
	slices.SortStableFunc(s, func(a, b models.User) int {
		return cmp.Or(
			compareNullableInt(a.RegionSortOrder, b.RegionSortOrder),
			cmp.Compare(a.SortOrder, b.SortOrder),
			cmp.Compare(a.FullName, b.FullName),
		)
	})
}

func SortClients(s []models.Client) {
	slices.SortStableFunc(s, func(a, b models.Client) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.FirstName, b.FirstName))
	})
}

func SortShifts(s []models.Shift) {
	slices.SortStableFunc(s, func(a, b models.Shift) int {
		return cmp.Or(cmp.Compare(a.ShiftDate, b.ShiftDate), cmp.Compare(a.TimeFrom, b.TimeFrom))
	})
}

func SortWeeklyTemplates(s []models.WeeklyTemplate) {
	slices.SortStableFunc(s, func(a, b models.WeeklyTemplate) int {
		return cmp.Or(cmp.Compare(a.EmployeeName, b.EmployeeName), cmp.Compare(a.Name, b.Name))
	})
}

// SortTemplateShifts groups by template, then orders by weekday and start time.
func SortTemplateShifts(s []models.TemplateShift) {
	slices.SortStableFunc(s, func(a, b models.TemplateShift) int {
		return cmp.Or(
			cmp.Compare(a.TemplateID.String(), b.TemplateID.String()),
			cmp.Compare(a.DayOfWeek, b.DayOfWeek),
			cmp.Compare(a.TimeFrom, b.TimeFrom),
		)
	})
}

func SortAbsences(s []models.Absence) {
	slices.SortStableFunc(s, func(a, b models.Absence) int {
		return cmp.Or(cmp.Compare(a.StartDate, b.StartDate), cmp.Compare(a.StartTime, b.StartTime))
	})
}

// nil sorts after any value, matching PostgreSQL's default NULLS LAST for ascending order.
func compareNullableInt(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}
