// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same uniqueness, reference, cascade and
// ordering rules as the PostgreSQL schema and is safe for concurrent use.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// DB holds every table. Slices keep insertion order, which is the final
// tie-break of every listing.
type DB struct {
	mu sync.RWMutex

	federalStates  []models.FederalState
	regions        []models.Region
	users          []models.User
	clients        []models.Client
	shifts         []models.Shift
	templates      []models.WeeklyTemplate
	templateShifts []models.TemplateShift
	absences       []models.Absence

	now func() time.Time
}

// New returns an empty database.
func New() *DB {
	return &DB{now: time.Now}
}

// NewStore returns a repositories.Store backed by a fresh in-memory database.
func NewStore() *repositories.Store {
	return New().Store()
}

// Store exposes db through the repository interfaces.
func (db *DB) Store() *repositories.Store {
	return &repositories.Store{
		FederalStates:   db,
		Regions:         db,
		Users:           db,
		Clients:         db,
		Shifts:          db,
		WeeklyTemplates: db,
		TemplateShifts:  db,
		Absences:        db,
	}
}

var (
	_ repositories.FederalStateRepository   = (*DB)(nil)
	_ repositories.RegionRepository         = (*DB)(nil)
	_ repositories.UserRepository           = (*DB)(nil)
	_ repositories.ClientRepository         = (*DB)(nil)
	_ repositories.ShiftRepository          = (*DB)(nil)
	_ repositories.WeeklyTemplateRepository = (*DB)(nil)
	_ repositories.TemplateShiftRepository  = (*DB)(nil)
	_ repositories.AbsenceRepository        = (*DB)(nil)
)

func indexByID[T any](rows []T, id uuid.UUID, idOf func(T) uuid.UUID) int {
	return slices.IndexFunc(rows, func(r T) bool { return idOf(r) == id })
}

func federalStateID(fs models.FederalState) uuid.UUID   { return fs.ID }
func regionID(r models.Region) uuid.UUID                { return r.ID }
func userID(u models.User) uuid.UUID                    { return u.ID }
func clientID(c models.Client) uuid.UUID                { return c.ID }
func shiftID(s models.Shift) uuid.UUID                  { return s.ID }
func templateID(t models.WeeklyTemplate) uuid.UUID      { return t.ID }
func templateShiftID(ts models.TemplateShift) uuid.UUID { return ts.ID }
func absenceID(a models.Absence) uuid.UUID              { return a.ID }

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Caller must hold db.mu.
func (db *DB) userExists(id uuid.UUID) bool {
	return indexByID(db.users, id, userID) >= 0
}

// Caller must hold db.mu.
func (db *DB) regionExists(id uuid.UUID) bool {
	return indexByID(db.regions, id, regionID) >= 0
}

// Caller must hold db.mu.
func (db *DB) optionalUserExists(id *uuid.UUID) bool {
	return id == nil || db.userExists(*id)
}

// Caller must hold db.mu.
func (db *DB) optionalRegionExists(id *uuid.UUID) bool {
	return id == nil || db.regionExists(*id)
}

// Caller must hold db.mu.
func (db *DB) userName(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	if i := indexByID(db.users, *id, userID); i >= 0 {
		name := db.users[i].FullName
		return &name
	}
	return nil
}
