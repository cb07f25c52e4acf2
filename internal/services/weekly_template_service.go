package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Weekly Template DTOs ---
type CreateWeeklyTemplateRequest struct {
	Employee *uuid.UUID `json:"employee"`
	Name     string     `json:"name" binding:"required,max=100"`
}

type UpdateWeeklyTemplateRequest struct {
	Employee *uuid.UUID `json:"employee"`
	Name     *string    `json:"name" binding:"omitempty,max=100"`
}

// --- WeeklyTemplateService Interface ---
type WeeklyTemplateService interface {
	ListWeeklyTemplates(ctx context.Context, actor access.Actor) ([]models.WeeklyTemplate, error)
	GetWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.WeeklyTemplate, error)
	CreateWeeklyTemplate(ctx context.Context, actor access.Actor, req CreateWeeklyTemplateRequest) (*models.WeeklyTemplate, error)
	UpdateWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateWeeklyTemplateRequest) (*models.WeeklyTemplate, error)
	DeleteWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type weeklyTemplateService struct {
	templateRepo      repositories.WeeklyTemplateRepository
	templateShiftRepo repositories.TemplateShiftRepository
}

// NewWeeklyTemplateService creates a new instance of WeeklyTemplateService.
func NewWeeklyTemplateService(templateRepo repositories.WeeklyTemplateRepository, templateShiftRepo repositories.TemplateShiftRepository) WeeklyTemplateService {
	return &weeklyTemplateService{templateRepo: templateRepo, templateShiftRepo: templateShiftRepo}
}

func (s *weeklyTemplateService) ListWeeklyTemplates(ctx context.Context, actor access.Actor) ([]models.WeeklyTemplate, error) {
	templates, err := s.templateRepo.ListWeeklyTemplates(access.NewQuery(actor, access.KindWeeklyTemplate, access.Filter{}))
	if err != nil {
		return nil, err
	}
	slots, err := s.templateShiftRepo.ListTemplateShifts(access.NewQuery(actor, access.KindTemplateShift, access.Filter{}))
	if err != nil {
		return nil, err
	}
	byTemplate := make(map[uuid.UUID][]models.TemplateShift, len(templates))
	for _, ts := range slots {
		byTemplate[ts.TemplateID] = append(byTemplate[ts.TemplateID], ts)
	}
	for i := range templates {
		templates[i].TemplateShifts = nonNil(byTemplate[templates[i].ID])
	}
	return templates, nil
}

func (s *weeklyTemplateService) GetWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.WeeklyTemplate, error) {
	t, err := visible(actor, access.KindWeeklyTemplate, id, s.templateRepo.GetWeeklyTemplateByID, access.WeeklyTemplateRow)
	if err != nil {
		return nil, err
	}
	if err := s.attachShifts(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateWeeklyTemplate assigns the template to the actor unless an admin names another employee.
func (s *weeklyTemplateService) CreateWeeklyTemplate(ctx context.Context, actor access.Actor, req CreateWeeklyTemplateRequest) (*models.WeeklyTemplate, error) {
	t := &models.WeeklyTemplate{
		ID:         uuid.New(),
		EmployeeID: access.OwnerFor(actor, req.Employee),
		Name:       strings.TrimSpace(req.Name),
	}
	v := &ValidationError{}
	checkRequired(v, "name", t.Name)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindWeeklyTemplate, access.ActionCreate, access.WeeklyTemplateRow(*t)); err != nil {
		return nil, err
	}
	if err := s.templateRepo.CreateWeeklyTemplate(t); err != nil {
		return nil, mapOwnerWriteError(err)
	}
	return s.reload(t.ID)
}

// UpdateWeeklyTemplate keeps the owner unless an admin reassigns it.
func (s *weeklyTemplateService) UpdateWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateWeeklyTemplateRequest) (*models.WeeklyTemplate, error) {
	t, err := visible(actor, access.KindWeeklyTemplate, id, s.templateRepo.GetWeeklyTemplateByID, access.WeeklyTemplateRow)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindWeeklyTemplate, access.ActionUpdate, access.WeeklyTemplateRow(*t)); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
		checkRequired(v, "name", t.Name)
	}
	if req.Employee != nil && actor.IsAdmin() {
		t.EmployeeID = *req.Employee
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.UpdateWeeklyTemplate(t); err != nil {
		return nil, mapOwnerWriteError(err)
	}
	return s.reload(t.ID)
}

// DeleteWeeklyTemplate removes the template with all of its template shifts.
func (s *weeklyTemplateService) DeleteWeeklyTemplate(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	t, err := visible(actor, access.KindWeeklyTemplate, id, s.templateRepo.GetWeeklyTemplateByID, access.WeeklyTemplateRow)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindWeeklyTemplate, access.ActionDelete, access.WeeklyTemplateRow(*t)); err != nil {
		return err
	}
	return mapRepoError(s.templateRepo.DeleteWeeklyTemplate(id), "id")
}

func (s *weeklyTemplateService) reload(id uuid.UUID) (*models.WeeklyTemplate, error) {
	t, err := s.templateRepo.GetWeeklyTemplateByID(id)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	if err := s.attachShifts(t); err != nil {
		return nil, err
	}
	return t, nil
}

// attachShifts loads the template's shifts. Whoever can see a template can see all of its shifts.
func (s *weeklyTemplateService) attachShifts(t *models.WeeklyTemplate) error {
	slots, err := s.templateShiftRepo.ListTemplateShifts(access.Query{
		Scope:    access.All(),
		Criteria: access.Criteria(access.KindTemplateShift, access.Filter{TemplateID: &t.ID}),
	})
	if err != nil {
		return err
	}
	t.TemplateShifts = nonNil(slots)
	return nil
}

// mapOwnerWriteError reports an unknown employee as a validation error.
func mapOwnerWriteError(err error) error {
	if errors.Is(err, repositories.ErrInvalidReference) {
		return NewValidationError("employee", "references an employee that does not exist")
	}
	return mapRepoError(err, "id")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
