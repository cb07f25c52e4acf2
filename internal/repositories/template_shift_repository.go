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

// TemplateShiftRepository defines the interface for template shift persistence.
// Loaded rows carry the owning employee of their template.
type TemplateShiftRepository interface {
	CreateTemplateShift(ts *models.TemplateShift) error
	GetTemplateShiftByID(id uuid.UUID) (*models.TemplateShift, error)
	ListTemplateShifts(q access.Query) ([]models.TemplateShift, error)
	UpdateTemplateShift(ts *models.TemplateShift) error
	DeleteTemplateShift(id uuid.UUID) error
}

type templateShiftRepository struct {
	db *sql.DB
}

// NewTemplateShiftRepository creates a new instance of TemplateShiftRepository.
func NewTemplateShiftRepository(db *sql.DB) TemplateShiftRepository {
	return &templateShiftRepository{db: db}
}

var templateShiftColumns = access.Columns{
	access.FieldID:            "ts.id",
	access.FieldTemplate:      "ts.template_id",
	access.FieldTemplateOwner: "wt.employee_id",
}

const templateShiftSelect = `SELECT
	    ts.id, ts.template_id, ts.day_of_week, ts.time_from::text, ts.time_to::text, ts.client_name, ts.notes,
	    ts.created_at, wt.employee_id
	  FROM template_shifts ts
	  JOIN weekly_templates wt ON ts.template_id = wt.id`

func scanTemplateShiftRow(row scanner) (*models.TemplateShift, error) {
	var ts models.TemplateShift
	err := row.Scan(
		&ts.ID, &ts.TemplateID, &ts.DayOfWeek, &ts.TimeFrom, &ts.TimeTo, &ts.ClientName, &ts.Notes,
		&ts.CreatedAt, &ts.TemplateEmployeeID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning template shift: %v", ErrDatabaseError, err)
	}
	return &ts, nil
}

func (r *templateShiftRepository) CreateTemplateShift(ts *models.TemplateShift) error {
	query := `INSERT INTO template_shifts (id, template_id, day_of_week, time_from, time_to, client_name, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	ts.CreatedAt = time.Now()
	_, err := r.db.Exec(query, ts.ID, ts.TemplateID, ts.DayOfWeek, ts.TimeFrom, ts.TimeTo, ts.ClientName, ts.Notes, ts.CreatedAt)
	if err != nil {
		return mapWriteError(err, "creating template shift")
	}
	return nil
}

func (r *templateShiftRepository) GetTemplateShiftByID(id uuid.UUID) (*models.TemplateShift, error) {
	return scanTemplateShiftRow(r.db.QueryRow(templateShiftSelect+` WHERE ts.id = $1`, id))
}

func (r *templateShiftRepository) ListTemplateShifts(q access.Query) ([]models.TemplateShift, error) {
	where, args, err := q.Where(templateShiftColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building template shift query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(templateShiftSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY ts.template_id::text COLLATE \"C\", ts.day_of_week, ts.time_from, ts.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying template shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.TemplateShift{}
	for rows.Next() {
		ts, err := scanTemplateShiftRow(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *ts)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating template shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

func (r *templateShiftRepository) UpdateTemplateShift(ts *models.TemplateShift) error {
	query := `UPDATE template_shifts SET
	            template_id = $1, day_of_week = $2, time_from = $3, time_to = $4, client_name = $5, notes = $6
	          WHERE id = $7`
	result, err := r.db.Exec(query, ts.TemplateID, ts.DayOfWeek, ts.TimeFrom, ts.TimeTo, ts.ClientName, ts.Notes, ts.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating template shift %s", ts.ID))
	}
	return checkAffected(result, "updating template shift")
}

func (r *templateShiftRepository) DeleteTemplateShift(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM template_shifts WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting template shift %s", id))
	}
	return checkAffected(result, "deleting template shift")
}
