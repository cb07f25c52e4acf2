package services

import (
	"context"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Absence DTOs ---
type CreateAbsenceRequest struct {
	Employee  *uuid.UUID `json:"employee"`
	StartDate string     `json:"start_date" binding:"required,civildate"`
	StartTime *string    `json:"start_time" binding:"omitempty,clocktime"`
	EndDate   string     `json:"end_date" binding:"required,civildate"`
	EndTime   *string    `json:"end_time" binding:"omitempty,clocktime"`
	Reason    string     `json:"reason"`
}

type UpdateAbsenceRequest struct {
	Employee  *uuid.UUID `json:"employee"`
	StartDate *string    `json:"start_date" binding:"omitempty,civildate"`
	StartTime *string    `json:"start_time" binding:"omitempty,clocktime"`
	EndDate   *string    `json:"end_date" binding:"omitempty,civildate"`
	EndTime   *string    `json:"end_time" binding:"omitempty,clocktime"`
	Reason    *string    `json:"reason"`
}

// --- AbsenceService Interface ---
type AbsenceService interface {
	ListAbsences(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.Absence, error)
	GetAbsence(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Absence, error)
	CreateAbsence(ctx context.Context, actor access.Actor, req CreateAbsenceRequest) (*models.Absence, error)
	UpdateAbsence(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateAbsenceRequest) (*models.Absence, error)
	DeleteAbsence(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type absenceService struct {
	absenceRepo repositories.AbsenceRepository
}

// NewAbsenceService creates a new instance of AbsenceService.
func NewAbsenceService(absenceRepo repositories.AbsenceRepository) AbsenceService {
	return &absenceService{absenceRepo: absenceRepo}
}

// ListAbsences returns absences overlapping the requested date range. Everyone sees every absence.
func (s *absenceService) ListAbsences(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.Absence, error) {
	return s.absenceRepo.ListAbsences(access.NewQuery(actor, access.KindAbsence, filter))
}

func (s *absenceService) GetAbsence(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Absence, error) {
	return visible(actor, access.KindAbsence, id, s.absenceRepo.GetAbsenceByID, access.AbsenceRow)
}

func validateAbsence(v *ValidationError, a *models.Absence) {
	checkDate(v, "start_date", &a.StartDate)
	checkDate(v, "end_date", &a.EndDate)
	checkTime(v, "start_time", &a.StartTime)
	checkTime(v, "end_time", &a.EndTime)
	checkPeriod(v, a.StartDate, a.StartTime, a.EndDate, a.EndTime)
}

// CreateAbsence records time off for the actor, or for any employee when the actor is an admin.
// Missing times default to the whole day.
func (s *absenceService) CreateAbsence(ctx context.Context, actor access.Actor, req CreateAbsenceRequest) (*models.Absence, error) {
	a := &models.Absence{
		ID:         uuid.New(),
		EmployeeID: access.OwnerFor(actor, req.Employee),
		StartDate:  req.StartDate,
		StartTime:  models.DefaultAbsenceStartTime,
		EndDate:    req.EndDate,
		EndTime:    models.DefaultAbsenceEndTime,
		Reason:     req.Reason,
	}
	if req.StartTime != nil {
		a.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		a.EndTime = *req.EndTime
	}

	v := &ValidationError{}
	validateAbsence(v, a)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindAbsence, access.ActionCreate, access.AbsenceRow(*a)); err != nil {
		return nil, err
	}
	if err := s.absenceRepo.CreateAbsence(a); err != nil {
		return nil, mapOwnerWriteError(err)
	}
	return s.reload(a.ID)
}

func (s *absenceService) UpdateAbsence(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateAbsenceRequest) (*models.Absence, error) {
	a, err := s.GetAbsence(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindAbsence, access.ActionUpdate, access.AbsenceRow(*a)); err != nil {
		return nil, err
	}

	if req.Employee != nil && actor.IsAdmin() {
		a.EmployeeID = *req.Employee
	}
	if req.StartDate != nil {
		a.StartDate = *req.StartDate
	}
	if req.StartTime != nil {
		a.StartTime = *req.StartTime
	}
	if req.EndDate != nil {
		a.EndDate = *req.EndDate
	}
	if req.EndTime != nil {
		a.EndTime = *req.EndTime
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}

	v := &ValidationError{}
	validateAbsence(v, a)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.absenceRepo.UpdateAbsence(a); err != nil {
		return nil, mapOwnerWriteError(err)
	}
	return s.reload(a.ID)
}

func (s *absenceService) DeleteAbsence(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	a, err := s.GetAbsence(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindAbsence, access.ActionDelete, access.AbsenceRow(*a)); err != nil {
		return err
	}
	return mapRepoError(s.absenceRepo.DeleteAbsence(id), "id")
}

func (s *absenceService) reload(id uuid.UUID) (*models.Absence, error) {
	a, err := s.absenceRepo.GetAbsenceByID(id)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	return a, nil
}
