package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateAbsence(a *models.Absence) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.absences, a.ID, absenceID) >= 0 {
		return fmt.Errorf("%w: absence id %s", repositories.ErrDuplicateKey, a.ID)
	}
	if !db.userExists(a.EmployeeID) {
		return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, a.EmployeeID)
	}
	now := db.now()
	a.CreatedAt, a.UpdatedAt = now, now
	stored := *a
	stored.EmployeeName = ""
	db.absences = append(db.absences, stored)
	db.decorateAbsence(a)
	return nil
}

func (db *DB) GetAbsenceByID(id uuid.UUID) (*models.Absence, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.absences, id, absenceID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	a := db.absences[i]
	db.decorateAbsence(&a)
	return &a, nil
}

func (db *DB) ListAbsences(q access.Query) ([]models.Absence, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.Absence, len(db.absences))
	for i := range db.absences {
		all[i] = db.absences[i]
		db.decorateAbsence(&all[i])
	}
	out := access.Select(all, q, access.AbsenceRow)
	access.SortAbsences(out)
	return out, nil
}

func (db *DB) UpdateAbsence(a *models.Absence) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.absences, a.ID, absenceID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if !db.userExists(a.EmployeeID) {
		return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, a.EmployeeID)
	}
	a.CreatedAt = db.absences[i].CreatedAt
	a.UpdatedAt = db.now()
	stored := *a
	stored.EmployeeName = ""
	db.absences[i] = stored
	db.decorateAbsence(a)
	return nil
}

func (db *DB) DeleteAbsence(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.absences, id, absenceID) < 0 {
		return repositories.ErrNotFound
	}
	db.absences = slices.DeleteFunc(db.absences, func(a models.Absence) bool { return a.ID == id })
	return nil
}

// Caller must hold db.mu.
func (db *DB) decorateAbsence(a *models.Absence) {
	if name := db.userName(&a.EmployeeID); name != nil {
		a.EmployeeName = *name
	}
}
