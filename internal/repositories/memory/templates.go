package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateWeeklyTemplate(t *models.WeeklyTemplate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.templates, t.ID, templateID) >= 0 {
		return fmt.Errorf("%w: weekly template id %s", repositories.ErrDuplicateKey, t.ID)
	}
	if !db.userExists(t.EmployeeID) {
		return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, t.EmployeeID)
	}
	now := db.now()
	t.CreatedAt, t.UpdatedAt = now, now
	db.templates = append(db.templates, storedTemplate(t))
	db.decorateTemplate(t)
	return nil
}

func (db *DB) GetWeeklyTemplateByID(id uuid.UUID) (*models.WeeklyTemplate, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.templates, id, templateID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	t := db.templates[i]
	db.decorateTemplate(&t)
	return &t, nil
}

func (db *DB) ListWeeklyTemplates(q access.Query) ([]models.WeeklyTemplate, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.WeeklyTemplate, len(db.templates))
	for i := range db.templates {
		all[i] = db.templates[i]
		db.decorateTemplate(&all[i])
	}
	out := access.Select(all, q, access.WeeklyTemplateRow)
	access.SortWeeklyTemplates(out)
	return out, nil
}

func (db *DB) UpdateWeeklyTemplate(t *models.WeeklyTemplate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.templates, t.ID, templateID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if !db.userExists(t.EmployeeID) {
		return fmt.Errorf("%w: user %s", repositories.ErrInvalidReference, t.EmployeeID)
	}
	t.CreatedAt = db.templates[i].CreatedAt
	t.UpdatedAt = db.now()
	db.templates[i] = storedTemplate(t)
	db.decorateTemplate(t)
	return nil
}

// DeleteWeeklyTemplate removes the template and its template shifts.
func (db *DB) DeleteWeeklyTemplate(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.templates, id, templateID) < 0 {
		return repositories.ErrNotFound
	}
	db.deleteWeeklyTemplateLocked(id)
	return nil
}

// Caller must hold db.mu for writing.
func (db *DB) deleteWeeklyTemplateLocked(id uuid.UUID) {
	db.templates = slices.DeleteFunc(db.templates, func(t models.WeeklyTemplate) bool { return t.ID == id })
	db.templateShifts = slices.DeleteFunc(db.templateShifts, func(ts models.TemplateShift) bool { return ts.TemplateID == id })
}

func storedTemplate(t *models.WeeklyTemplate) models.WeeklyTemplate {
	stored := *t
	stored.EmployeeName = ""
	stored.TemplateShifts = nil
	return stored
}

// Caller must hold db.mu.
func (db *DB) decorateTemplate(t *models.WeeklyTemplate) {
	if name := db.userName(&t.EmployeeID); name != nil {
		t.EmployeeName = *name
	}
}

func (db *DB) CreateTemplateShift(ts *models.TemplateShift) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.templateShifts, ts.ID, templateShiftID) >= 0 {
		return fmt.Errorf("%w: template shift id %s", repositories.ErrDuplicateKey, ts.ID)
	}
	if indexByID(db.templates, ts.TemplateID, templateID) < 0 {
		return fmt.Errorf("%w: weekly template %s", repositories.ErrInvalidReference, ts.TemplateID)
	}
	ts.CreatedAt = db.now()
	db.templateShifts = append(db.templateShifts, *ts)
	db.decorateTemplateShift(ts)
	return nil
}

func (db *DB) GetTemplateShiftByID(id uuid.UUID) (*models.TemplateShift, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.templateShifts, id, templateShiftID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	ts := db.templateShifts[i]
	db.decorateTemplateShift(&ts)
	return &ts, nil
}

func (db *DB) ListTemplateShifts(q access.Query) ([]models.TemplateShift, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.TemplateShift, len(db.templateShifts))
	for i := range db.templateShifts {
		all[i] = db.templateShifts[i]
		db.decorateTemplateShift(&all[i])
	}
	out := access.Select(all, q, access.TemplateShiftRow)
	access.SortTemplateShifts(out)
	return out, nil
}

func (db *DB) UpdateTemplateShift(ts *models.TemplateShift) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.templateShifts, ts.ID, templateShiftID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if indexByID(db.templates, ts.TemplateID, templateID) < 0 {
		return fmt.Errorf("%w: weekly template %s", repositories.ErrInvalidReference, ts.TemplateID)
	}
	ts.CreatedAt = db.templateShifts[i].CreatedAt
	db.templateShifts[i] = *ts
	db.decorateTemplateShift(ts)
	return nil
}

func (db *DB) DeleteTemplateShift(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.templateShifts, id, templateShiftID) < 0 {
		return repositories.ErrNotFound
	}
	db.templateShifts = slices.DeleteFunc(db.templateShifts, func(ts models.TemplateShift) bool { return ts.ID == id })
	return nil
}

// Caller must hold db.mu.
func (db *DB) decorateTemplateShift(ts *models.TemplateShift) {
	if j := indexByID(db.templates, ts.TemplateID, templateID); j >= 0 {
		ts.TemplateEmployeeID = db.templates[j].EmployeeID
	}
}
