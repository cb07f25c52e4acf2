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

// WeeklyTemplateRepository defines the interface for weekly template persistence.
// Template shifts are not loaded here; see TemplateShiftRepository.
type WeeklyTemplateRepository interface {
	CreateWeeklyTemplate(t *models.WeeklyTemplate) error
	GetWeeklyTemplateByID(id uuid.UUID) (*models.WeeklyTemplate, error)
	ListWeeklyTemplates(q access.Query) ([]models.WeeklyTemplate, error)
	UpdateWeeklyTemplate(t *models.WeeklyTemplate) error
	DeleteWeeklyTemplate(id uuid.UUID) error
}

type weeklyTemplateRepository struct {
	db *sql.DB
}

// NewWeeklyTemplateRepository creates a new instance of WeeklyTemplateRepository.
func NewWeeklyTemplateRepository(db *sql.DB) WeeklyTemplateRepository {
	return &weeklyTemplateRepository{db: db}
}

var weeklyTemplateColumns = access.Columns{
	access.FieldID:       "wt.id",
	access.FieldEmployee: "wt.employee_id",
}

const weeklyTemplateSelect = `SELECT wt.id, wt.employee_id, wt.name, wt.created_at, wt.updated_at, emp.full_name
	  FROM weekly_templates wt
	  JOIN users emp ON wt.employee_id = emp.id`

func scanWeeklyTemplateRow(row scanner) (*models.WeeklyTemplate, error) {
	var t models.WeeklyTemplate
	err := row.Scan(&t.ID, &t.EmployeeID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning weekly template: %v", ErrDatabaseError, err)
	}
	return &t, nil
}

func (r *weeklyTemplateRepository) CreateWeeklyTemplate(t *models.WeeklyTemplate) error {
	query := `INSERT INTO weekly_templates (id, employee_id, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	if _, err := r.db.Exec(query, t.ID, t.EmployeeID, t.Name, t.CreatedAt, t.UpdatedAt); err != nil {
		return mapWriteError(err, "creating weekly template")
	}
	return nil
}

func (r *weeklyTemplateRepository) GetWeeklyTemplateByID(id uuid.UUID) (*models.WeeklyTemplate, error) {
	return scanWeeklyTemplateRow(r.db.QueryRow(weeklyTemplateSelect+` WHERE wt.id = $1`, id))
}

func (r *weeklyTemplateRepository) ListWeeklyTemplates(q access.Query) ([]models.WeeklyTemplate, error) {
	where, args, err := q.Where(weeklyTemplateColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building weekly template query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(weeklyTemplateSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY emp.full_name COLLATE \"C\", wt.name COLLATE \"C\", wt.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying weekly templates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	templates := []models.WeeklyTemplate{}
	for rows.Next() {
		t, err := scanWeeklyTemplateRow(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating weekly template rows: %v", ErrDatabaseError, err)
	}
	return templates, nil
}

func (r *weeklyTemplateRepository) UpdateWeeklyTemplate(t *models.WeeklyTemplate) error {
	query := `UPDATE weekly_templates SET employee_id = $1, name = $2, updated_at = $3 WHERE id = $4`
	t.UpdatedAt = time.Now()
	result, err := r.db.Exec(query, t.EmployeeID, t.Name, t.UpdatedAt, t.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating weekly template %s", t.ID))
	}
	return checkAffected(result, "updating weekly template")
}

// DeleteWeeklyTemplate removes the template together with its template shifts.
func (r *weeklyTemplateRepository) DeleteWeeklyTemplate(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM weekly_templates WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting weekly template %s", id))
	}
	return checkAffected(result, "deleting weekly template")
}
