package access

import (
	"testing"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSortUsers(t *testing.T) {
	users := []models.User{
		{ID: uuid.New(), FullName: "Zoe"},
		{ID: uuid.New(), FullName: "Bea", RegionSortOrder: intPtr(2)},
		{ID: uuid.New(), FullName: "Ada", RegionSortOrder: intPtr(1), SortOrder: 1},
		{ID: uuid.New(), FullName: "Cem", RegionSortOrder: intPtr(1)},
		{ID: uuid.New(), FullName: "Abe"},
	}
	SortUsers(users)

	want := []string{"Cem", "Ada", "Bea", "Abe", "Zoe"}
	for i, name := range want {
		if users[i].FullName != name {
			t.Fatalf("users[%d] = %s, want %s", i, users[i].FullName, name)
		}
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	shifts := []models.Shift{
		{ID: uuid.New(), ShiftDate: "2024-01-02", TimeFrom: "08:00:00"},
		{ID: first, ShiftDate: "2024-01-01", TimeFrom: "08:00:00"},
		{ID: second, ShiftDate: "2024-01-01", TimeFrom: "08:00:00"},
	}
	SortShifts(shifts)
	if shifts[0].ID != first || shifts[1].ID != second {
		t.Fatal("equal shifts lost insertion order")
	}
}

func TestSortRegionsByStateThenRegion(t *testing.T) {
	regions := []models.Region{
		{Name: "B", FederalStateSortOrder: 1},
		{Name: "C", FederalStateSortOrder: 0, SortOrder: 1},
		{Name: "A", FederalStateSortOrder: 0, SortOrder: 1},
		{Name: "D", FederalStateSortOrder: 0},
	}
	SortRegions(regions)
	got := ""
	for _, r := range regions {
		got += r.Name
	}
	if got != "DACB" {
		t.Fatalf("order = %s, want DACB", got)
	}
}

func TestSortAbsencesAndTemplates(t *testing.T) {
	absences := []models.Absence{
		{StartDate: "2024-01-02", StartTime: "00:00:00"},
		{StartDate: "2024-01-01", StartTime: "12:00:00"},
		{StartDate: "2024-01-01", StartTime: "08:00:00"},
	}
	SortAbsences(absences)
	if absences[0].StartTime != "08:00:00" || absences[2].StartDate != "2024-01-02" {
		t.Fatalf("absences = %+v", absences)
	}

	templates := []models.WeeklyTemplate{
		{EmployeeName: "Bob", Name: "A"},
		{EmployeeName: "Ann", Name: "Z"},
		{EmployeeName: "Ann", Name: "B"},
	}
	SortWeeklyTemplates(templates)
	if templates[0].Name != "B" || templates[2].EmployeeName != "Bob" {
		t.Fatalf("templates = %+v", templates)
	}
}
