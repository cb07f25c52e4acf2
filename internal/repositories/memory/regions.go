package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateRegion(region *models.Region) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.regions, region.ID, regionID) >= 0 {
		return fmt.Errorf("%w: region id %s", repositories.ErrDuplicateKey, region.ID)
	}
	if indexByID(db.federalStates, region.FederalStateID, federalStateID) < 0 {
		return fmt.Errorf("%w: federal state %s", repositories.ErrInvalidReference, region.FederalStateID)
	}
	now := db.now()
	region.CreatedAt, region.UpdatedAt = now, now
	stored := *region
	stored.Description = cloneString(region.Description)
	db.regions = append(db.regions, stored)
	db.decorateRegion(region)
	return nil
}

func (db *DB) GetRegionByID(id uuid.UUID) (*models.Region, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.regions, id, regionID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	region := db.loadRegion(i)
	return &region, nil
}

func (db *DB) ListRegions(q access.Query) ([]models.Region, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.Region, len(db.regions))
	for i := range db.regions {
		all[i] = db.loadRegion(i)
	}
	out := access.Select(all, q, access.RegionRow)
	access.SortRegions(out)
	return out, nil
}

func (db *DB) UpdateRegion(region *models.Region) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.regions, region.ID, regionID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if indexByID(db.federalStates, region.FederalStateID, federalStateID) < 0 {
		return fmt.Errorf("%w: federal state %s", repositories.ErrInvalidReference, region.FederalStateID)
	}
	region.CreatedAt = db.regions[i].CreatedAt
	region.UpdatedAt = db.now()
	stored := *region
	stored.Description = cloneString(region.Description)
	db.regions[i] = stored
	db.decorateRegion(region)
	return nil
}

// DeleteRegion removes the region and clears it from users and shifts.
func (db *DB) DeleteRegion(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.regionExists(id) {
		return repositories.ErrNotFound
	}
	db.deleteRegionLocked(id)
	return nil
}

// Caller must hold db.mu for writing.
func (db *DB) deleteRegionLocked(id uuid.UUID) {
	db.regions = slices.DeleteFunc(db.regions, func(r models.Region) bool { return r.ID == id })
	for i := range db.users {
		if db.users[i].RegionID != nil && *db.users[i].RegionID == id {
			db.users[i].RegionID = nil
		}
	}
	for i := range db.shifts {
		if db.shifts[i].RegionID != nil && *db.shifts[i].RegionID == id {
			db.shifts[i].RegionID = nil
		}
	}
}

// Caller must hold db.mu.
func (db *DB) loadRegion(i int) models.Region {
	region := db.regions[i]
	region.Description = cloneString(region.Description)
	db.decorateRegion(&region)
	return region
}

// Caller must hold db.mu.
func (db *DB) decorateRegion(region *models.Region) {
	if j := indexByID(db.federalStates, region.FederalStateID, federalStateID); j >= 0 {
		region.FederalStateName = db.federalStates[j].Name
		region.FederalStateSortOrder = db.federalStates[j].SortOrder
	}
}
