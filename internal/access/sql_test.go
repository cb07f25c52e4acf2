package access

import (
	"testing"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
)

var testShiftColumns = Columns{
	FieldID:                 "s.id",
	FieldEmployee:           "s.employee_id",
	FieldRegion:             "s.region_id",
	FieldOpenShift:          "s.open_shift",
	FieldSeekingReplacement: "s.seeking_replacement",
	FieldShiftDate:          "s.shift_date",
}

func TestWhereRendersScopeAndCriteria(t *testing.T) {
	region := uuid.New()
	e := employee(&region)

	where, args, err := NewQuery(e, KindShift, Filter{StartDate: "2024-01-01"}).Where(testShiftColumns, 3)
	if err != nil {
		t.Fatalf("Where() error = %v", err)
	}
	want := "(s.employee_id = $3 OR s.region_id = $4 OR s.open_shift = $5 OR s.seeking_replacement = $6) AND s.shift_date >= $7"
	if where != want {
		t.Fatalf("Where() = %q\nwant %q", where, want)
	}
	if len(args) != 5 || args[0] != e.ID || args[1] != region || args[2] != true || args[4] != "2024-01-01" {
		t.Fatalf("args = %v", args)
	}
}

func TestWhereSpecialScopes(t *testing.T) {
	tests := []struct {
		name  string
		q     Query
		want  string
		nargs int
	}{
		{"unrestricted", Unrestricted(), "TRUE", 0},
		{"admin with filter", NewQuery(admin(), KindShift, Filter{EndDate: "2024-02-01"}), "s.shift_date <= $1", 1},
		{"nothing visible", Query{Scope: None()}, "FALSE", 0},
		{"nothing visible with filter", Query{Scope: None(), Criteria: []Condition{Eq(FieldID, uuid.New())}}, "FALSE AND s.id = $1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := tt.q.Where(testShiftColumns, 1)
			if err != nil {
				t.Fatalf("Where() error = %v", err)
			}
			if where != tt.want || len(args) != tt.nargs {
				t.Fatalf("Where() = %q %v, want %q with %d args", where, args, tt.want, tt.nargs)
			}
		})
	}
}

func TestWhereUnmappedField(t *testing.T) {
	q := NewQuery(employee(nil), KindTemplateShift, Filter{})
	if _, _, err := q.Where(testShiftColumns, 1); err == nil {
		t.Fatal("Where() with an unmapped field should fail")
	}
}

func TestWhereAgreesWithMatches(t *testing.T) {
	e := employee(nil)
	q := NewQuery(e, KindShift, Filter{})
	mine := ShiftRow(models.Shift{EmployeeID: &e.ID})
	if !q.Matches(mine) {
		t.Fatal("own shift should match")
	}
	if q.Matches(ShiftRow(models.Shift{})) {
		t.Fatal("unflagged foreign shift should not match")
	}
}
