package memory

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

type fixture struct {
	db     *DB
	state  models.FederalState
	region models.Region
	alice  models.User
	bob    models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: New()}

	f.state = models.FederalState{ID: uuid.New(), Name: "Bayern"}
	mustNoErr(t, f.db.CreateFederalState(&f.state))

	f.region = models.Region{ID: uuid.New(), Name: "Nord", FederalStateID: f.state.ID}
	mustNoErr(t, f.db.CreateRegion(&f.region))

	regionID := f.region.ID
	f.alice = models.User{ID: uuid.New(), Email: "alice@example.com", FullName: "Alice", Role: models.RoleEmployee, RegionID: &regionID, IsActive: true}
	mustNoErr(t, f.db.CreateUser(&f.alice))

	f.bob = models.User{ID: uuid.New(), Email: "bob@example.com", FullName: "Bob", Role: models.RoleEmployee, IsActive: true}
	mustNoErr(t, f.db.CreateUser(&f.bob))
	return f
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	dup := models.User{ID: uuid.New(), Email: "alice@example.com", Role: models.RoleEmployee}
	if err := f.db.CreateUser(&dup); !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("CreateUser() error = %v, want ErrDuplicateKey", err)
	}
}

func TestCreateUserRejectsUnknownRegion(t *testing.T) {
	f := newFixture(t)
	u := models.User{ID: uuid.New(), Email: "carol@example.com", Role: models.RoleEmployee, RegionID: ptr(uuid.New())}
	if err := f.db.CreateUser(&u); !errors.Is(err, repositories.ErrInvalidReference) {
		t.Fatalf("CreateUser() error = %v, want ErrInvalidReference", err)
	}
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	u, err := f.db.GetUserByEmail("  ALICE@example.com ")
	mustNoErr(t, err)
	if u.ID != f.alice.ID {
		t.Fatalf("GetUserByEmail() = %s, want %s", u.ID, f.alice.ID)
	}
	if u.RegionName == nil || *u.RegionName != "Nord" {
		t.Errorf("RegionName = %v, want Nord", u.RegionName)
	}
}

func TestUpdateUserKeepsPasswordHash(t *testing.T) {
	f := newFixture(t)
	mustNoErr(t, f.db.SetPassword(f.alice.ID, "hash-1"))

	update := f.alice
	update.FullName = "Alice Updated"
	update.PasswordHash = ""
	mustNoErr(t, f.db.UpdateUser(&update))

	got, err := f.db.GetUserByID(f.alice.ID)
	mustNoErr(t, err)
	if got.PasswordHash != "hash-1" || got.FullName != "Alice Updated" {
		t.Fatalf("got hash %q name %q", got.PasswordHash, got.FullName)
	}
}

func TestDeleteUserCascadesAndNullsShiftRefs(t *testing.T) {
	f := newFixture(t)

	shift := models.Shift{ID: uuid.New(), EmployeeID: ptr(f.alice.ID), CreatedByID: ptr(f.alice.ID), OriginalEmployeeID: ptr(f.alice.ID), ShiftDate: "2024-03-01", TimeFrom: "08:00:00", TimeTo: "12:00:00"}
	mustNoErr(t, f.db.CreateShift(&shift))
	tpl := models.WeeklyTemplate{ID: uuid.New(), EmployeeID: f.alice.ID, Name: "Week A"}
	mustNoErr(t, f.db.CreateWeeklyTemplate(&tpl))
	ts := models.TemplateShift{ID: uuid.New(), TemplateID: tpl.ID, DayOfWeek: models.Monday, TimeFrom: "08:00:00", TimeTo: "10:00:00"}
	mustNoErr(t, f.db.CreateTemplateShift(&ts))
	absence := models.Absence{ID: uuid.New(), EmployeeID: f.alice.ID, StartDate: "2024-03-02", StartTime: models.DefaultAbsenceStartTime, EndDate: "2024-03-03", EndTime: models.DefaultAbsenceEndTime}
	mustNoErr(t, f.db.CreateAbsence(&absence))

	mustNoErr(t, f.db.DeleteUser(f.alice.ID))

	got, err := f.db.GetShiftByID(shift.ID)
	mustNoErr(t, err)
	if got.EmployeeID != nil || got.CreatedByID != nil || got.OriginalEmployeeID != nil {
		t.Errorf("shift user refs not cleared: %+v", got)
	}
	if _, err := f.db.GetWeeklyTemplateByID(tpl.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("template survived user delete: %v", err)
	}
	if _, err := f.db.GetTemplateShiftByID(ts.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("template shift survived user delete: %v", err)
	}
	if _, err := f.db.GetAbsenceByID(absence.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("absence survived user delete: %v", err)
	}
}

func TestDeleteFederalStateCascadesToRegions(t *testing.T) {
	f := newFixture(t)
	shift := models.Shift{ID: uuid.New(), RegionID: ptr(f.region.ID), ShiftDate: "2024-03-01", TimeFrom: "08:00:00", TimeTo: "12:00:00"}
	mustNoErr(t, f.db.CreateShift(&shift))

	mustNoErr(t, f.db.DeleteFederalState(f.state.ID))

	if _, err := f.db.GetRegionByID(f.region.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("region survived federal state delete: %v", err)
	}
	alice, err := f.db.GetUserByID(f.alice.ID)
	mustNoErr(t, err)
	if alice.RegionID != nil || alice.RegionName != nil {
		t.Errorf("user region not cleared: %v", alice.RegionID)
	}
	got, err := f.db.GetShiftByID(shift.ID)
	mustNoErr(t, err)
	if got.RegionID != nil {
		t.Errorf("shift region not cleared: %v", got.RegionID)
	}
}

func TestBulkCreateShiftsIsAtomic(t *testing.T) {
	f := newFixture(t)
	good := &models.Shift{ID: uuid.New(), EmployeeID: ptr(f.bob.ID), ShiftDate: "2024-03-01", TimeFrom: "08:00:00", TimeTo: "12:00:00"}
	bad := &models.Shift{ID: uuid.New(), EmployeeID: ptr(uuid.New()), ShiftDate: "2024-03-02", TimeFrom: "08:00:00", TimeTo: "12:00:00"}

	err := f.db.BulkCreateShifts([]*models.Shift{good, bad})
	if !errors.Is(err, repositories.ErrInvalidReference) {
		t.Fatalf("BulkCreateShifts() error = %v, want ErrInvalidReference", err)
	}
	all, err := f.db.ListShifts(access.Unrestricted())
	mustNoErr(t, err)
	if len(all) != 0 {
		t.Fatalf("partial insert: %d shifts stored", len(all))
	}

	mustNoErr(t, f.db.BulkCreateShifts([]*models.Shift{good}))
	all, err = f.db.ListShifts(access.Unrestricted())
	mustNoErr(t, err)
	if len(all) != 1 || all[0].EmployeeName == nil || *all[0].EmployeeName != "Bob" {
		t.Fatalf("ListShifts() = %+v", all)
	}
}

func TestListShiftsAppliesQueryAndOrder(t *testing.T) {
	f := newFixture(t)
	mk := func(date, from string, employee *uuid.UUID, open bool) models.Shift {
		s := models.Shift{ID: uuid.New(), EmployeeID: employee, ShiftDate: date, TimeFrom: from, TimeTo: "23:00:00", OpenShift: open}
		mustNoErr(t, f.db.CreateShift(&s))
		return s
	}
	late := mk("2024-03-02", "08:00:00", ptr(f.bob.ID), false)
	earlyB := mk("2024-03-01", "10:00:00", nil, true)
	earlyA := mk("2024-03-01", "08:00:00", ptr(f.alice.ID), false)

	all, err := f.db.ListShifts(access.Unrestricted())
	mustNoErr(t, err)
	want := []uuid.UUID{earlyA.ID, earlyB.ID, late.ID}
	for i, s := range all {
		if s.ID != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, s.ID, want[i])
		}
	}

	// Bob has no region: sees his own shift and the open one.
	bob := access.ActorFromUser(f.bob)
	visible, err := f.db.ListShifts(access.NewQuery(bob, access.KindShift, access.Filter{}))
	mustNoErr(t, err)
	if len(visible) != 2 || visible[0].ID != earlyB.ID || visible[1].ID != late.ID {
		t.Fatalf("visible to bob = %+v", visible)
	}
}

func TestListUsersOrdersUnassignedLast(t *testing.T) {
	f := newFixture(t)
	all, err := f.db.ListUsers(access.Unrestricted())
	mustNoErr(t, err)
	if len(all) != 2 || all[0].ID != f.alice.ID || all[1].ID != f.bob.ID {
		t.Fatalf("ListUsers() order = %v, %v", all[0].FullName, all[1].FullName)
	}
}

func TestFederalStateNameUnique(t *testing.T) {
	f := newFixture(t)
	dup := models.FederalState{ID: uuid.New(), Name: "Bayern"}
	if err := f.db.CreateFederalState(&dup); !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("CreateFederalState() error = %v, want ErrDuplicateKey", err)
	}
}

func TestTemplateShiftCarriesTemplateOwner(t *testing.T) {
	f := newFixture(t)
	tpl := models.WeeklyTemplate{ID: uuid.New(), EmployeeID: f.bob.ID, Name: "Week"}
	mustNoErr(t, f.db.CreateWeeklyTemplate(&tpl))
	ts := models.TemplateShift{ID: uuid.New(), TemplateID: tpl.ID, DayOfWeek: models.Friday, TimeFrom: "09:00:00", TimeTo: "10:00:00"}
	mustNoErr(t, f.db.CreateTemplateShift(&ts))

	got, err := f.db.GetTemplateShiftByID(ts.ID)
	mustNoErr(t, err)
	if got.TemplateEmployeeID != f.bob.ID {
		t.Fatalf("TemplateEmployeeID = %s, want %s", got.TemplateEmployeeID, f.bob.ID)
	}

	orphan := models.TemplateShift{ID: uuid.New(), TemplateID: uuid.New(), DayOfWeek: models.Monday}
	if err := f.db.CreateTemplateShift(&orphan); !errors.Is(err, repositories.ErrInvalidReference) {
		t.Fatalf("CreateTemplateShift() error = %v, want ErrInvalidReference", err)
	}
}
