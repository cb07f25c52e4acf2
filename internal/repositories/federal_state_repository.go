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

// FederalStateRepository defines the interface for federal state persistence.
type FederalStateRepository interface {
	CreateFederalState(fs *models.FederalState) error
	GetFederalStateByID(id uuid.UUID) (*models.FederalState, error)
	ListFederalStates(q access.Query) ([]models.FederalState, error)
	UpdateFederalState(fs *models.FederalState) error
	DeleteFederalState(id uuid.UUID) error
}

type federalStateRepository struct {
	db *sql.DB
}

// NewFederalStateRepository creates a new instance of FederalStateRepository.
func NewFederalStateRepository(db *sql.DB) FederalStateRepository {
	return &federalStateRepository{db: db}
}

var federalStateColumns = access.Columns{access.FieldID: "fs.id"}

const federalStateSelect = `SELECT fs.id, fs.name, fs.sort_order, fs.created_at, fs.updated_at FROM federal_states fs`

func scanFederalStateRow(row scanner) (*models.FederalState, error) {
	var fs models.FederalState
	err := row.Scan(&fs.ID, &fs.Name, &fs.SortOrder, &fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning federal state: %v", ErrDatabaseError, err)
	}
	return &fs, nil
}

func (r *federalStateRepository) CreateFederalState(fs *models.FederalState) error {
	query := `INSERT INTO federal_states (id, name, sort_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()
	fs.CreatedAt, fs.UpdatedAt = now, now
	if _, err := r.db.Exec(query, fs.ID, fs.Name, fs.SortOrder, fs.CreatedAt, fs.UpdatedAt); err != nil {
		return mapWriteError(err, "creating federal state")
	}
	return nil
}

func (r *federalStateRepository) GetFederalStateByID(id uuid.UUID) (*models.FederalState, error) {
	return scanFederalStateRow(r.db.QueryRow(federalStateSelect+` WHERE fs.id = $1`, id))
}

func (r *federalStateRepository) ListFederalStates(q access.Query) ([]models.FederalState, error) {
	where, args, err := q.Where(federalStateColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building federal state query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(federalStateSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY fs.sort_order, fs.name COLLATE \"C\", fs.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying federal states: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	states := []models.FederalState{}
	for rows.Next() {
		fs, err := scanFederalStateRow(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, *fs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating federal state rows: %v", ErrDatabaseError, err)
	}
	return states, nil
}

func (r *federalStateRepository) UpdateFederalState(fs *models.FederalState) error {
	query := `UPDATE federal_states SET name = $1, sort_order = $2, updated_at = $3 WHERE id = $4`
	fs.UpdatedAt = time.Now()
	result, err := r.db.Exec(query, fs.Name, fs.SortOrder, fs.UpdatedAt, fs.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating federal state %s", fs.ID))
	}
	return checkAffected(result, "updating federal state")
}

// DeleteFederalState removes the state. Its regions are removed by the ON DELETE CASCADE constraint.
func (r *federalStateRepository) DeleteFederalState(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM federal_states WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting federal state %s", id))
	}
	return checkAffected(result, "deleting federal state")
}
