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

// AbsenceRepository defines the interface for absence persistence.
type AbsenceRepository interface {
	CreateAbsence(a *models.Absence) error
	GetAbsenceByID(id uuid.UUID) (*models.Absence, error)
	ListAbsences(q access.Query) ([]models.Absence, error)
	UpdateAbsence(a *models.Absence) error
	DeleteAbsence(id uuid.UUID) error
}

type absenceRepository struct {
	db *sql.DB
}

// NewAbsenceRepository creates a new instance of AbsenceRepository.
func NewAbsenceRepository(db *sql.DB) AbsenceRepository {
	return &absenceRepository{db: db}
}

var absenceColumns = access.Columns{
	access.FieldID:        "a.id",
	access.FieldEmployee:  "a.employee_id",
	access.FieldStartDate: "a.start_date",
	access.FieldEndDate:   "a.end_date",
}

const absenceSelect = `SELECT
	    a.id, a.employee_id, a.start_date::text, a.start_time::text, a.end_date::text, a.end_time::text, a.reason,
	    a.created_at, a.updated_at, emp.full_name
	  FROM absences a
	  JOIN users emp ON a.employee_id = emp.id`

func scanAbsenceRow(row scanner) (*models.Absence, error) {
	var a models.Absence
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.StartDate, &a.StartTime, &a.EndDate, &a.EndTime, &a.Reason,
		&a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning absence: %v", ErrDatabaseError, err)
	}
	return &a, nil
}

func (r *absenceRepository) CreateAbsence(a *models.Absence) error {
	query := `INSERT INTO absences (id, employee_id, start_date, start_time, end_date, end_time, reason, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	_, err := r.db.Exec(query, a.ID, a.EmployeeID, a.StartDate, a.StartTime, a.EndDate, a.EndTime, a.Reason, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "creating absence")
	}
	return nil
}

func (r *absenceRepository) GetAbsenceByID(id uuid.UUID) (*models.Absence, error) {
	return scanAbsenceRow(r.db.QueryRow(absenceSelect+` WHERE a.id = $1`, id))
}

func (r *absenceRepository) ListAbsences(q access.Query) ([]models.Absence, error) {
	where, args, err := q.Where(absenceColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building absence query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(absenceSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY a.start_date, a.start_time, a.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying absences: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	absences := []models.Absence{}
	for rows.Next() {
		a, err := scanAbsenceRow(rows)
		if err != nil {
			return nil, err
		}
		absences = append(absences, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating absence rows: %v", ErrDatabaseError, err)
	}
	return absences, nil
}

func (r *absenceRepository) UpdateAbsence(a *models.Absence) error {
	query := `UPDATE absences SET
	            employee_id = $1, start_date = $2, start_time = $3, end_date = $4, end_time = $5, reason = $6, updated_at = $7
	          WHERE id = $8`
	a.UpdatedAt = time.Now()
	result, err := r.db.Exec(query, a.EmployeeID, a.StartDate, a.StartTime, a.EndDate, a.EndTime, a.Reason, a.UpdatedAt, a.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating absence %s", a.ID))
	}
	return checkAffected(result, "updating absence")
}

func (r *absenceRepository) DeleteAbsence(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM absences WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting absence %s", id))
	}
	return checkAffected(result, "deleting absence")
}
