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

// ShiftRepository defines the interface for shift persistence.
type ShiftRepository interface {
	CreateShift(shift *models.Shift) error
	BulkCreateShifts(shifts []*models.Shift) error
	GetShiftByID(id uuid.UUID) (*models.Shift, error)
	ListShifts(q access.Query) ([]models.Shift, error)
	UpdateShift(shift *models.Shift) error
	DeleteShift(id uuid.UUID) error
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

var shiftColumns = access.Columns{
	access.FieldID:                 "s.id",
	access.FieldEmployee:           "s.employee_id",
	access.FieldRegion:             "s.region_id",
	access.FieldOpenShift:          "s.open_shift",
	access.FieldSeekingReplacement: "s.seeking_replacement",
	access.FieldShiftDate:          "s.shift_date",
}

const shiftSelect = `SELECT
	    s.id, s.employee_id, s.shift_date::text, s.time_from::text, s.time_to::text, s.client_name, s.notes,
	    s.created_by, s.region_id, s.seeking_replacement, s.original_employee_id, s.open_shift,
	    s.created_at, s.updated_at,
	    emp.full_name, creator.full_name, orig.full_name, reg.name
	  FROM shifts s
	  LEFT JOIN users emp ON s.employee_id = emp.id
	  LEFT JOIN users creator ON s.created_by = creator.id
	  LEFT JOIN users orig ON s.original_employee_id = orig.id
	  LEFT JOIN regions reg ON s.region_id = reg.id`

func scanShiftRow(row scanner) (*models.Shift, error) {
	var shift models.Shift
	var employeeID, createdByID, regionID, originalEmployeeID uuid.NullUUID
	var employeeName, createdByName, originalEmployeeName, regionName sql.NullString
	err := row.Scan(
		&shift.ID, &employeeID, &shift.ShiftDate, &shift.TimeFrom, &shift.TimeTo, &shift.ClientName, &shift.Notes,
		&createdByID, &regionID, &shift.SeekingReplacement, &originalEmployeeID, &shift.OpenShift,
		&shift.CreatedAt, &shift.UpdatedAt,
		&employeeName, &createdByName, &originalEmployeeName, &regionName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}
	shift.EmployeeID = uuidPtr(employeeID)
	shift.CreatedByID = uuidPtr(createdByID)
	shift.RegionID = uuidPtr(regionID)
	shift.OriginalEmployeeID = uuidPtr(originalEmployeeID)
	shift.EmployeeName = stringPtr(employeeName)
	shift.CreatedByName = stringPtr(createdByName)
	shift.OriginalEmployeeName = stringPtr(originalEmployeeName)
	shift.RegionName = stringPtr(regionName)
	return &shift, nil
}

func insertShift(executor SQLExecutor, shift *models.Shift) error {
	query := `INSERT INTO shifts (
	            id, employee_id, shift_date, time_from, time_to, client_name, notes,
	            created_by, region_id, seeking_replacement, original_employee_id, open_shift,
	            created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	now := time.Now()
	shift.CreatedAt, shift.UpdatedAt = now, now
	_, err := executor.Exec(query,
		shift.ID, nullUUID(shift.EmployeeID), shift.ShiftDate, shift.TimeFrom, shift.TimeTo, shift.ClientName, shift.Notes,
		nullUUID(shift.CreatedByID), nullUUID(shift.RegionID), shift.SeekingReplacement, nullUUID(shift.OriginalEmployeeID), shift.OpenShift,
		shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "creating shift")
	}
	return nil
}

func (r *shiftRepository) CreateShift(shift *models.Shift) error {
	return insertShift(r.db, shift)
}

// BulkCreateShifts inserts every shift in one transaction. Either all rows are stored or none.
func (r *shiftRepository) BulkCreateShifts(shifts []*models.Shift) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting bulk shift transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback() // no-op after Commit

	for i, shift := range shifts {
		if err := insertShift(tx, shift); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing bulk shift transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *shiftRepository) GetShiftByID(id uuid.UUID) (*models.Shift, error) {
	return scanShiftRow(r.db.QueryRow(shiftSelect+` WHERE s.id = $1`, id))
}

func (r *shiftRepository) ListShifts(q access.Query) ([]models.Shift, error) {
	where, args, err := q.Where(shiftColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building shift query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(shiftSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY s.shift_date, s.time_from, s.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		shift, err := scanShiftRow(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

func (r *shiftRepository) UpdateShift(shift *models.Shift) error {
	query := `UPDATE shifts SET
	            employee_id = $1, shift_date = $2, time_from = $3, time_to = $4, client_name = $5, notes = $6,
	            region_id = $7, seeking_replacement = $8, original_employee_id = $9, open_shift = $10, updated_at = $11
	          WHERE id = $12`
	shift.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		nullUUID(shift.EmployeeID), shift.ShiftDate, shift.TimeFrom, shift.TimeTo, shift.ClientName, shift.Notes,
		nullUUID(shift.RegionID), shift.SeekingReplacement, nullUUID(shift.OriginalEmployeeID), shift.OpenShift, shift.UpdatedAt,
		shift.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating shift %s", shift.ID))
	}
	return checkAffected(result, "updating shift")
}

func (r *shiftRepository) DeleteShift(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting shift %s", id))
	}
	return checkAffected(result, "deleting shift")
}
