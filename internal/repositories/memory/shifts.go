package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateShift(shift *models.Shift) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.checkShiftLocked(shift, true); err != nil {
		return err
	}
	db.insertShiftLocked(shift)
	return nil
}

// BulkCreateShifts validates every shift before inserting any, so a failure leaves the table untouched.
func (db *DB) BulkCreateShifts(shifts []*models.Shift) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(shifts))
	for i, shift := range shifts {
		if err := db.checkShiftLocked(shift, true); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
		if seen[shift.ID] {
			return fmt.Errorf("shift %d: %w: shift id %s", i, repositories.ErrDuplicateKey, shift.ID)
		}
		seen[shift.ID] = true
	}
	for _, shift := range shifts {
		db.insertShiftLocked(shift)
	}
	return nil
}

func (db *DB) GetShiftByID(id uuid.UUID) (*models.Shift, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.shifts, id, shiftID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	shift := db.loadShift(i)
	return &shift, nil
}

func (db *DB) ListShifts(q access.Query) ([]models.Shift, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.Shift, len(db.shifts))
	for i := range db.shifts {
		all[i] = db.loadShift(i)
	}
	out := access.Select(all, q, access.ShiftRow)
	access.SortShifts(out)
	return out, nil
}

func (db *DB) UpdateShift(shift *models.Shift) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.shifts, shift.ID, shiftID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if err := db.checkShiftLocked(shift, false); err != nil {
		return err
	}
	shift.CreatedAt = db.shifts[i].CreatedAt
	shift.CreatedByID = cloneUUID(db.shifts[i].CreatedByID)
	shift.UpdatedAt = db.now()
	db.shifts[i] = storedShift(shift)
	db.decorateShift(shift)
	return nil
}

func (db *DB) DeleteShift(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.shifts, id, shiftID) < 0 {
		return repositories.ErrNotFound
	}
	db.shifts = slices.DeleteFunc(db.shifts, func(s models.Shift) bool { return s.ID == id })
	return nil
}

// Caller must hold db.mu.
func (db *DB) checkShiftLocked(shift *models.Shift, creating bool) error {
	if creating && indexByID(db.shifts, shift.ID, shiftID) >= 0 {
		return fmt.Errorf("%w: shift id %s", repositories.ErrDuplicateKey, shift.ID)
	}
	for _, ref := range []*uuid.UUID{shift.EmployeeID, shift.OriginalEmployeeID} {
		if !db.optionalUserExists(ref) {
			return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, *ref)
		}
	}
	if creating && !db.optionalUserExists(shift.CreatedByID) {
		return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, *shift.CreatedByID)
	}
	if !db.optionalRegionExists(shift.RegionID) {
		return fmt.Errorf("%w: region %s", repositories.ErrInvalidReference, *shift.RegionID)
	}
	return nil
}

// Caller must hold db.mu for writing.
func (db *DB) insertShiftLocked(shift *models.Shift) {
	now := db.now()
	shift.CreatedAt, shift.UpdatedAt = now, now
	db.shifts = append(db.shifts, storedShift(shift))
	db.decorateShift(shift)
}

func storedShift(shift *models.Shift) models.Shift {
	stored := *shift
	stored.EmployeeID = cloneUUID(shift.EmployeeID)
	stored.CreatedByID = cloneUUID(shift.CreatedByID)
	stored.RegionID = cloneUUID(shift.RegionID)
	stored.OriginalEmployeeID = cloneUUID(shift.OriginalEmployeeID)
	stored.EmployeeName, stored.CreatedByName, stored.OriginalEmployeeName, stored.RegionName = nil, nil, nil, nil
	return stored
}

// Caller must hold db.mu.
func (db *DB) loadShift(i int) models.Shift {
	shift := storedShift(&db.shifts[i])
	db.decorateShift(&shift)
	return shift
}

// Caller must hold db.mu.
func (db *DB) decorateShift(shift *models.Shift) {
	shift.EmployeeName = db.userName(shift.EmployeeID)
	shift.CreatedByName = db.userName(shift.CreatedByID)
	shift.OriginalEmployeeName = db.userName(shift.OriginalEmployeeID)
	shift.RegionName = nil
	if shift.RegionID != nil {
		if j := indexByID(db.regions, *shift.RegionID, regionID); j >= 0 {
			name := db.regions[j].Name
			shift.RegionName = &name
		}
	}
}
