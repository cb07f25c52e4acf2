package access

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
)

func TestParseFilter(t *testing.T) {
	id := uuid.New()
	f, err := ParseFilter(url.Values{
		"start_date":  {"2024-01-14"},
		"end_date":    {"2024-01-20"},
		"employee_id": {id.String()},
		"unrelated":   {"x"},
	})
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if f.StartDate != "2024-01-14" || f.EndDate != "2024-01-20" || f.EmployeeID == nil || *f.EmployeeID != id || f.TemplateID != nil {
		t.Fatalf("ParseFilter() = %+v", f)
	}

	empty, err := ParseFilter(url.Values{})
	if err != nil || !empty.IsEmpty() {
		t.Fatalf("ParseFilter(empty) = %+v, %v", empty, err)
	}

	for _, params := range []url.Values{
		{"start_date": {"14.01.2024"}},
		{"end_date": {"2024-13-01"}},
		{"employee_id": {"42"}},
		{"template_id": {"nope"}},
	} {
		_, err := ParseFilter(params)
		var ferr *FilterError
		if !errors.As(err, &ferr) {
			t.Fatalf("ParseFilter(%v) error = %v, want *FilterError", params, err)
		}
	}
}

func TestApplyFiltersNarrows(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	shifts := []models.Shift{
		{ID: uuid.New(), EmployeeID: &x, ShiftDate: "2024-01-01"},
		{ID: uuid.New(), EmployeeID: &y, ShiftDate: "2024-01-05"},
		{ID: uuid.New(), ShiftDate: "2024-01-10"},
		{ID: uuid.New(), EmployeeID: &x, ShiftDate: "2024-01-15"},
	}

	filters := []Filter{
		{},
		{StartDate: "2024-01-05"},
		{EndDate: "2024-01-05"},
		{StartDate: "2024-01-02", EndDate: "2024-01-14"},
		{EmployeeID: &x},
		{EmployeeID: &x, StartDate: "2024-01-10"},
		{TemplateID: &y},
	}
	for _, f := range filters {
		got := ApplyFilters(shifts, KindShift, f, ShiftRow)
		if !isSubsequence(got, shifts) {
			t.Fatalf("ApplyFilters(%+v) is not an ordered subset of its input", f)
		}
		again := ApplyFilters(got, KindShift, f, ShiftRow)
		if len(again) != len(got) {
			t.Fatalf("ApplyFilters(%+v) is not idempotent", f)
		}
	}

	if got := ApplyFilters(shifts, KindShift, Filter{}, ShiftRow); len(got) != len(shifts) {
		t.Fatalf("empty filter dropped rows: %d of %d", len(got), len(shifts))
	}
	if got := ApplyFilters(shifts, KindShift, Filter{StartDate: "2024-01-02", EndDate: "2024-01-14"}, ShiftRow); len(got) != 2 {
		t.Fatalf("date range kept %d shifts, want 2", len(got))
	}
	if got := ApplyFilters(shifts, KindShift, Filter{EmployeeID: &x}, ShiftRow); len(got) != 2 {
		t.Fatalf("employee filter kept %d shifts, want 2", len(got))
	}
}

func isSubsequence(sub, set []models.Shift) bool {
	j := 0
	for _, s := range set {
		if j < len(sub) && sub[j].ID == s.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestAbsenceOverlap(t *testing.T) {
	absences := []models.Absence{{ID: uuid.New(), StartDate: "2024-01-10", EndDate: "2024-01-15"}}

	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{"overlap at end", Filter{StartDate: "2024-01-14", EndDate: "2024-01-20"}, 1},
		{"overlap at start", Filter{StartDate: "2024-01-01", EndDate: "2024-01-10"}, 1},
		{"contained", Filter{StartDate: "2024-01-11", EndDate: "2024-01-12"}, 1},
		{"after", Filter{StartDate: "2024-01-20"}, 0},
		{"before", Filter{EndDate: "2024-01-09"}, 0},
		{"open start bound", Filter{EndDate: "2024-01-10"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyFilters(absences, KindAbsence, tt.f, AbsenceRow); len(got) != tt.want {
				t.Fatalf("got %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFilterIntersectsVisibility(t *testing.T) {
	e := employee(nil)
	other := uuid.New()
	slots := []models.TemplateShift{
		{ID: uuid.New(), TemplateID: uuid.New(), TemplateEmployeeID: e.ID},
		{ID: uuid.New(), TemplateID: uuid.New(), TemplateEmployeeID: other},
	}

	got := VisibleSet(slots, e, KindTemplateShift, Filter{TemplateID: &slots[1].TemplateID}, TemplateShiftRow)
	if len(got) != 0 {
		t.Fatalf("template filter widened visibility: %d slots", len(got))
	}
	got = VisibleSet(slots, e, KindTemplateShift, Filter{TemplateID: &slots[0].TemplateID}, TemplateShiftRow)
	if len(got) != 1 {
		t.Fatalf("template filter on own template kept %d slots, want 1", len(got))
	}
}
