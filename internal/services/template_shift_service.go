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

// --- Template Shift DTOs ---
type CreateTemplateShiftRequest struct {
	Template   uuid.UUID `json:"template" binding:"required"`
	DayOfWeek  *int      `json:"day_of_week" binding:"required,weekday"`
	TimeFrom   string    `json:"time_from" binding:"required,clocktime"`
	TimeTo     string    `json:"time_to" binding:"required,clocktime"`
	ClientName string    `json:"client_name" binding:"max=255"`
	Notes      string    `json:"notes"`
}

type UpdateTemplateShiftRequest struct {
	Template   *uuid.UUID `json:"template"`
	DayOfWeek  *int       `json:"day_of_week" binding:"omitempty,weekday"`
	TimeFrom   *string    `json:"time_from" binding:"omitempty,clocktime"`
	TimeTo     *string    `json:"time_to" binding:"omitempty,clocktime"`
	ClientName *string    `json:"client_name" binding:"omitempty,max=255"`
	Notes      *string    `json:"notes"`
}

// --- TemplateShiftService Interface ---
type TemplateShiftService interface {
	ListTemplateShifts(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.TemplateShift, error)
	GetTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.TemplateShift, error)
	CreateTemplateShift(ctx context.Context, actor access.Actor, req CreateTemplateShiftRequest) (*models.TemplateShift, error)
	UpdateTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateTemplateShiftRequest) (*models.TemplateShift, error)
	DeleteTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type templateShiftService struct {
	templateRepo      repositories.WeeklyTemplateRepository
	templateShiftRepo repositories.TemplateShiftRepository
}

// NewTemplateShiftService creates a new instance of TemplateShiftService.
func NewTemplateShiftService(templateRepo repositories.WeeklyTemplateRepository, templateShiftRepo repositories.TemplateShiftRepository) TemplateShiftService {
	return &templateShiftService{templateRepo: templateRepo, templateShiftRepo: templateShiftRepo}
}

func (s *templateShiftService) ListTemplateShifts(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.TemplateShift, error) {
	return s.templateShiftRepo.ListTemplateShifts(access.NewQuery(actor, access.KindTemplateShift, filter))
}

func (s *templateShiftService) GetTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.TemplateShift, error) {
	return visible(actor, access.KindTemplateShift, id, s.templateShiftRepo.GetTemplateShiftByID, access.TemplateShiftRow)
}

// parent resolves the template a slot is attached to. A template the actor
// cannot see is reported the same way as a missing one.
func (s *templateShiftService) parent(actor access.Actor, id uuid.UUID) (*models.WeeklyTemplate, error) {
	t, err := visible(actor, access.KindWeeklyTemplate, id, s.templateRepo.GetWeeklyTemplateByID, access.WeeklyTemplateRow)
	if errors.Is(err, ErrNotFound) {
		return nil, NewValidationError("template", "not found")
	}
	return t, err
}

func validateTemplateShift(v *ValidationError, ts *models.TemplateShift) {
	if !models.ValidDayOfWeek(ts.DayOfWeek) {
		v.Add("day_of_week", "must be between 0 (Monday) and 6 (Sunday)")
	}
	checkTime(v, "time_from", &ts.TimeFrom)
	checkTime(v, "time_to", &ts.TimeTo)
	checkTimeRange(v, ts.TimeFrom, ts.TimeTo)
}

func (s *templateShiftService) CreateTemplateShift(ctx context.Context, actor access.Actor, req CreateTemplateShiftRequest) (*models.TemplateShift, error) {
	ts := &models.TemplateShift{
		ID:         uuid.New(),
		TemplateID: req.Template,
		TimeFrom:   req.TimeFrom,
		TimeTo:     req.TimeTo,
		ClientName: strings.TrimSpace(req.ClientName),
		Notes:      req.Notes,
	}
	v := &ValidationError{}
	if req.DayOfWeek == nil {
		v.Add("day_of_week", "is required")
	} else {
		ts.DayOfWeek = *req.DayOfWeek
	}
	validateTemplateShift(v, ts)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	tpl, err := s.parent(actor, ts.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindTemplateShift, access.ActionCreate, access.TemplateOwnerRow(tpl.ID, tpl.EmployeeID)); err != nil {
		return nil, err
	}
	if err := s.templateShiftRepo.CreateTemplateShift(ts); err != nil {
		return nil, mapRepoError(err, "template")
	}
	return s.reload(ts.ID)
}

// UpdateTemplateShift requires ownership of the current template and, when moving the slot, of the new one.
func (s *templateShiftService) UpdateTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateTemplateShiftRequest) (*models.TemplateShift, error) {
	ts, err := s.GetTemplateShift(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindTemplateShift, access.ActionUpdate, access.TemplateShiftRow(*ts)); err != nil {
		return nil, err
	}

	if req.Template != nil && *req.Template != ts.TemplateID {
		tpl, err := s.parent(actor, *req.Template)
		if err != nil {
			return nil, err
		}
		if err := authorize(actor, access.KindTemplateShift, access.ActionUpdate, access.TemplateOwnerRow(tpl.ID, tpl.EmployeeID)); err != nil {
			return nil, err
		}
		ts.TemplateID = tpl.ID
	}
	if req.DayOfWeek != nil {
		ts.DayOfWeek = *req.DayOfWeek
	}
	if req.TimeFrom != nil {
		ts.TimeFrom = *req.TimeFrom
	}
	if req.TimeTo != nil {
		ts.TimeTo = *req.TimeTo
	}
	if req.ClientName != nil {
		ts.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Notes != nil {
		ts.Notes = *req.Notes
	}

	v := &ValidationError{}
	validateTemplateShift(v, ts)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.templateShiftRepo.UpdateTemplateShift(ts); err != nil {
		return nil, mapRepoError(err, "template")
	}
	return s.reload(ts.ID)
}

func (s *templateShiftService) DeleteTemplateShift(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	ts, err := s.GetTemplateShift(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindTemplateShift, access.ActionDelete, access.TemplateShiftRow(*ts)); err != nil {
		return err
	}
	return mapRepoError(s.templateShiftRepo.DeleteTemplateShift(id), "id")
}

func (s *templateShiftService) reload(id uuid.UUID) (*models.TemplateShift, error) {
	ts, err := s.templateShiftRepo.GetTemplateShiftByID(id)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	return ts, nil
}
