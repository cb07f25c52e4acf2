package repositories

import "database/sql"

// Store groups the repositories backing one data source.
type Store struct {
	FederalStates   FederalStateRepository
	Regions         RegionRepository
	Users           UserRepository
	Clients         ClientRepository
	Shifts          ShiftRepository
	WeeklyTemplates WeeklyTemplateRepository
	TemplateShifts  TemplateShiftRepository
	Absences        AbsenceRepository
}

// NewPostgresStore builds a Store on a PostgreSQL connection pool.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		FederalStates:   NewFederalStateRepository(db),
		Regions:         NewRegionRepository(db),
		Users:           NewUserRepository(db),
		Clients:         NewClientRepository(db),
		Shifts:          NewShiftRepository(db),
		WeeklyTemplates: NewWeeklyTemplateRepository(db),
		TemplateShifts:  NewTemplateShiftRepository(db),
		Absences:        NewAbsenceRepository(db),
	}
}
