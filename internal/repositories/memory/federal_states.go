package memory

import (
	"fmt"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateFederalState(fs *models.FederalState) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.federalStates, fs.ID, federalStateID) >= 0 {
		return fmt.Errorf("%w: federal state id %s", repositories.ErrDuplicateKey, fs.ID)
	}
	if db.federalStateNameTaken(fs.Name, fs.ID) {
		return fmt.Errorf("%w: federal state name %q", repositories.ErrDuplicateKey, fs.Name)
	}
	now := db.now()
	fs.CreatedAt, fs.UpdatedAt = now, now
	db.federalStates = append(db.federalStates, *fs)
	return nil
}

func (db *DB) GetFederalStateByID(id uuid.UUID) (*models.FederalState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.federalStates, id, federalStateID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	fs := db.federalStates[i]
	return &fs, nil
}

func (db *DB) ListFederalStates(q access.Query) ([]models.FederalState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := access.Select(db.federalStates, q, access.FederalStateRow)
	access.SortFederalStates(out)
	return out, nil
}

func (db *DB) UpdateFederalState(fs *models.FederalState) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.federalStates, fs.ID, federalStateID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if db.federalStateNameTaken(fs.Name, fs.ID) {
		return fmt.Errorf("%w: federal state name %q", repositories.ErrDuplicateKey, fs.Name)
	}
	fs.CreatedAt = db.federalStates[i].CreatedAt
	fs.UpdatedAt = db.now()
	db.federalStates[i] = *fs
	return nil
}

// DeleteFederalState removes the state and every region in it, with the region's own cascades.
func (db *DB) DeleteFederalState(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.federalStates, id, federalStateID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	db.federalStates = append(db.federalStates[:i], db.federalStates[i+1:]...)

	var doomed []uuid.UUID
	for _, r := range db.regions {
		if r.FederalStateID == id {
			doomed = append(doomed, r.ID)
		}
	}
	for _, id := range doomed {
		db.deleteRegionLocked(id)
	}
	return nil
}

// Caller must hold db.mu.
func (db *DB) federalStateNameTaken(name string, except uuid.UUID) bool {
	for _, fs := range db.federalStates {
		if fs.Name == name && fs.ID != except {
			return true
		}
	}
	return false
}
