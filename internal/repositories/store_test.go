package repositories_test

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/database"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/internal/repositories/memory"
)

// testStores returns the in-memory store and, when POSTGRES_TEST_DSN is set,
// a PostgreSQL store on an emptied schema. Both must behave identically.
func testStores(t *testing.T) map[string]*repositories.Store {
	t.Helper()
	stores := map[string]*repositories.Store{"memory": memory.NewStore()}

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Log("POSTGRES_TEST_DSN not set, checking the memory store only")
		return stores
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.ApplySchema(db); err != nil {
		t.Fatalf("ApplySchema() error = %v", err)
	}
	if _, err := db.Exec(`TRUNCATE absences, template_shifts, weekly_templates, shifts, clients, users, regions, federal_states CASCADE`); err != nil {
		t.Fatalf("truncate error = %v", err)
	}
	stores["postgres"] = repositories.NewPostgresStore(db)
	return stores
}

type fixture struct {
	tirol, wien, salzburg  uuid.UUID
	ost, nord              uuid.UUID
	admin, alice, bob      uuid.UUID
	carl                   uuid.UUID
	shifts                 map[string]uuid.UUID
	adler, zeller, vanDijk uuid.UUID
}

func newFixture() fixture {
	f := fixture{
		tirol: uuid.New(), wien: uuid.New(), salzburg: uuid.New(),
		ost: uuid.New(), nord: uuid.New(),
		admin: uuid.New(), alice: uuid.New(), bob: uuid.New(), carl: uuid.New(),
		adler: uuid.New(), zeller: uuid.New(), vanDijk: uuid.New(),
		shifts: map[string]uuid.UUID{},
	}
	for _, name := range []string{"own", "bobHidden", "open", "sameRegion", "seeking"} {
		f.shifts[name] = uuid.New()
	}
	return f
}

func mustNoErr(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", what, err)
	}
}

// seed inserts identical rows into s. Names mix upper and lower case so that
// ordering depends on byte order rather than a locale collation.
func (f fixture) seed(t *testing.T, s *repositories.Store) {
	t.Helper()
	for id, name := range map[uuid.UUID]string{f.tirol: "Tirol", f.wien: "Wien", f.salzburg: "salzburg"} {
		mustNoErr(t, name, s.FederalStates.CreateFederalState(&models.FederalState{ID: id, Name: name}))
	}
	mustNoErr(t, "Ost", s.Regions.CreateRegion(&models.Region{ID: f.ost, Name: "Ost", FederalStateID: f.tirol}))
	mustNoErr(t, "nord", s.Regions.CreateRegion(&models.Region{ID: f.nord, Name: "nord", FederalStateID: f.tirol}))

	users := []models.User{
		{ID: f.admin, Email: "admin@example.com", FullName: "admin", Role: models.RoleAdmin},
		{ID: f.alice, Email: "alice@example.com", FullName: "alice", Role: models.RoleEmployee, RegionID: &f.ost},
		{ID: f.bob, Email: "bob@example.com", FullName: "bob", Role: models.RoleEmployee, RegionID: &f.nord},
		{ID: f.carl, Email: "carl@example.com", FullName: "Carl Z", Role: models.RoleEmployee, RegionID: &f.ost},
	}
	for i := range users {
		users[i].IsActive = true
		users[i].PasswordHash = "x"
		mustNoErr(t, users[i].Email, s.Users.CreateUser(&users[i]))
	}

	for id, last := range map[uuid.UUID]string{f.adler: "Adler", f.zeller: "Zeller", f.vanDijk: "van Dijk"} {
		mustNoErr(t, last, s.Clients.CreateClient(&models.Client{ID: id, FirstName: "Eva", LastName: last}))
	}

	shifts := []*models.Shift{
		{ID: f.shifts["own"], EmployeeID: &f.alice, ShiftDate: "2026-03-03", TimeFrom: "08:00:00", TimeTo: "12:00:00", RegionID: &f.ost},
		{ID: f.shifts["bobHidden"], EmployeeID: &f.bob, ShiftDate: "2026-03-02", TimeFrom: "08:00:00", TimeTo: "12:00:00", RegionID: &f.nord},
		{ID: f.shifts["open"], ShiftDate: "2026-03-02", TimeFrom: "06:00:00", TimeTo: "10:00:00", RegionID: &f.nord, OpenShift: true},
		{ID: f.shifts["sameRegion"], EmployeeID: &f.carl, ShiftDate: "2026-03-02", TimeFrom: "09:00:00", TimeTo: "13:00:00", RegionID: &f.ost},
		{ID: f.shifts["seeking"], EmployeeID: &f.bob, ShiftDate: "2026-03-04", TimeFrom: "07:00:00", TimeTo: "11:00:00", RegionID: &f.nord, SeekingReplacement: true},
	}
	mustNoErr(t, "shifts", s.Shifts.BulkCreateShifts(shifts))
}

func ids[T any](rows []T, id func(T) uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}

func assertOrder(t *testing.T, what string, got, want []uuid.UUID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d rows, want %d", what, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: row %d = %s, want %s", what, i, got[i], want[i])
		}
	}
}

func TestStoresListInTheSameOrder(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.seed(t, s)
			all := access.Unrestricted()

			states, err := s.FederalStates.ListFederalStates(all)
			mustNoErr(t, "federal state list", err)
			assertOrder(t, "federal states", ids(states, func(r models.FederalState) uuid.UUID { return r.ID }),
				[]uuid.UUID{f.tirol, f.wien, f.salzburg})

			regions, err := s.Regions.ListRegions(all)
			mustNoErr(t, "region list", err)
			assertOrder(t, "regions", ids(regions, func(r models.Region) uuid.UUID { return r.ID }),
				[]uuid.UUID{f.ost, f.nord})

			users, err := s.Users.ListUsers(all)
			mustNoErr(t, "user list", err)
			assertOrder(t, "users", ids(users, func(r models.User) uuid.UUID { return r.ID }),
				[]uuid.UUID{f.carl, f.alice, f.bob, f.admin})

			clients, err := s.Clients.ListClients(all)
			mustNoErr(t, "client list", err)
			assertOrder(t, "clients", ids(clients, func(r models.Client) uuid.UUID { return r.ID }),
				[]uuid.UUID{f.adler, f.zeller, f.vanDijk})
		})
	}
}

func TestStoresApplyTheSameShiftScope(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.seed(t, s)
			alice := access.Actor{ID: f.alice, Role: models.RoleEmployee, RegionID: &f.ost, IsActive: true}
			shiftIDs := func(rows []models.Shift) []uuid.UUID {
				return ids(rows, func(r models.Shift) uuid.UUID { return r.ID })
			}

			tests := []struct {
				name   string
				filter access.Filter
				want   []string
			}{
				{"visible set", access.Filter{}, []string{"open", "sameRegion", "own", "seeking"}},
				{"from date", access.Filter{StartDate: "2026-03-03"}, []string{"own", "seeking"}},
				{"until date", access.Filter{EndDate: "2026-03-02"}, []string{"open", "sameRegion"}},
				{"other employee", access.Filter{EmployeeID: &f.bob}, []string{"seeking"}},
			}
			for _, tt := range tests {
				got, err := s.Shifts.ListShifts(access.NewQuery(alice, access.KindShift, tt.filter))
				if err != nil {
					t.Fatalf("%s: ListShifts() error = %v", tt.name, err)
				}
				want := make([]uuid.UUID, len(tt.want))
				for i, key := range tt.want {
					want[i] = f.shifts[key]
				}
				assertOrder(t, tt.name, shiftIDs(got), want)
			}
		})
	}
}

func TestStoresRejectBulkCreateAsAWhole(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.seed(t, s)
			missing := uuid.New()

			batch := []*models.Shift{
				{ID: uuid.New(), EmployeeID: &f.alice, ShiftDate: "2026-04-01", TimeFrom: "08:00:00", TimeTo: "12:00:00"},
				{ID: uuid.New(), EmployeeID: &missing, ShiftDate: "2026-04-02", TimeFrom: "08:00:00", TimeTo: "12:00:00"},
			}
			err := s.Shifts.BulkCreateShifts(batch)
			if !errors.Is(err, repositories.ErrInvalidReference) {
				t.Fatalf("BulkCreateShifts() error = %v, want ErrInvalidReference", err)
			}
			if _, err := s.Shifts.GetShiftByID(batch[0].ID); !errors.Is(err, repositories.ErrNotFound) {
				t.Fatalf("first shift of a failed batch was stored, lookup error = %v", err)
			}
		})
	}
}
