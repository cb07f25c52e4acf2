package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
)

// RegionRepository defines the interface for region persistence.
type RegionRepository interface {
	CreateRegion(region *models.Region) error
	GetRegionByID(id uuid.UUID) (*models.Region, error)
	ListRegions(q access.Query) ([]models.Region, error)
	UpdateRegion(region *models.Region) error
	DeleteRegion(id uuid.UUID) error
}

type regionRepository struct {
	db *sql.DB
}

// NewRegionRepository creates a new instance of RegionRepository.
func NewRegionRepository(db *sql.DB) RegionRepository {
	return &regionRepository{db: db}
}

var regionColumns = access.Columns{access.FieldID: "r.id"}

const regionSelect = `SELECT
	    r.id, r.name, r.description, r.federal_state_id, r.sort_order, r.created_at, r.updated_at,
	    fs.name AS federal_state_name, fs.sort_order AS federal_state_sort_order
	  FROM regions r
	  JOIN federal_states fs ON r.federal_state_id = fs.id`

func scanRegionRow(row scanner) (*models.Region, error) {
	var region models.Region
	var description sql.NullString
	err := row.Scan(
		&region.ID, &region.Name, &description, &region.FederalStateID, &region.SortOrder,
		&region.CreatedAt, &region.UpdatedAt,
		&region.FederalStateName, &region.FederalStateSortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning region: %v", ErrDatabaseError, err)
	}
	region.Description = stringPtr(description)
	return &region, nil
}

func (r *regionRepository) CreateRegion(region *models.Region) error {
	query := `INSERT INTO regions (id, name, description, federal_state_id, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	region.CreatedAt, region.UpdatedAt = now, now
	_, err := r.db.Exec(query,
		region.ID, region.Name, region.Description, region.FederalStateID, region.SortOrder,
		region.CreatedAt, region.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "creating region")
	}
	return nil
}

func (r *regionRepository) GetRegionByID(id uuid.UUID) (*models.Region, error) {
	return scanRegionRow(r.db.QueryRow(regionSelect+` WHERE r.id = $1`, id))
}

func (r *regionRepository) ListRegions(q access.Query) ([]models.Region, error) {
	where, args, err := q.Where(regionColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building region query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(regionSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY fs.sort_order, r.sort_order, r.name COLLATE \"C\", r.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying regions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		region, err := scanRegionRow(rows)
		if err != nil {
			return nil, err
		}
		regions = append(regions, *region)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating region rows: %v", ErrDatabaseError, err)
	}
	return regions, nil
}

func (r *regionRepository) UpdateRegion(region *models.Region) error {
	query := `UPDATE regions SET
	            name = $1, description = $2, federal_state_id = $3, sort_order = $4, updated_at = $5
	          WHERE id = $6`
	region.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		region.Name, region.Description, region.FederalStateID, region.SortOrder, region.UpdatedAt, region.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating region %s", region.ID))
	}
	return checkAffected(result, "updating region")
}

// DeleteRegion removes the region. Users and shifts referencing it keep existing with a NULL region.
func (r *regionRepository) DeleteRegion(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting region %s", id))
	}
	return checkAffected(result, "deleting region")
}
