package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Shift DTOs ---
type CreateShiftRequest struct {
	Employee           *uuid.UUID `json:"employee"`
	ShiftDate          string     `json:"shift_date" binding:"required,civildate"`
	TimeFrom           string     `json:"time_from" binding:"required,clocktime"`
	TimeTo             string     `json:"time_to" binding:"required,clocktime"`
	ClientName         string     `json:"client_name" binding:"max=255"`
	Notes              string     `json:"notes"`
	Region             *uuid.UUID `json:"region"`
	SeekingReplacement bool       `json:"seeking_replacement"`
	OriginalEmployee   *uuid.UUID `json:"original_employee"`
	OpenShift          bool       `json:"open_shift"`
}

// UpdateShiftRequest is a partial update. Reference fields distinguish "absent" from "null".
type UpdateShiftRequest struct {
	Employee           OptionalID `json:"employee"`
	ShiftDate          *string    `json:"shift_date" binding:"omitempty,civildate"`
	TimeFrom           *string    `json:"time_from" binding:"omitempty,clocktime"`
	TimeTo             *string    `json:"time_to" binding:"omitempty,clocktime"`
	ClientName         *string    `json:"client_name" binding:"omitempty,max=255"`
	Notes              *string    `json:"notes"`
	Region             OptionalID `json:"region"`
	SeekingReplacement *bool      `json:"seeking_replacement"`
	OriginalEmployee   OptionalID `json:"original_employee"`
	OpenShift          *bool      `json:"open_shift"`
}

type BulkCreateShiftsRequest struct {
	Shifts []CreateShiftRequest `json:"shifts" binding:"dive"`
}

// --- ShiftService Interface ---
type ShiftService interface {
	ListShifts(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.Shift, error)
	GetShift(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Shift, error)
	CreateShift(ctx context.Context, actor access.Actor, req CreateShiftRequest) (*models.Shift, error)
	BulkCreateShifts(ctx context.Context, actor access.Actor, req BulkCreateShiftsRequest) ([]models.Shift, error)
	UpdateShift(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateShiftRequest) (*models.Shift, error)
	DeleteShift(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type shiftService struct {
	shiftRepo repositories.ShiftRepository
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(shiftRepo repositories.ShiftRepository) ShiftService {
	return &shiftService{shiftRepo: shiftRepo}
}

// ListShifts returns the actor's visible shifts narrowed by date range and employee.
func (s *shiftService) ListShifts(ctx context.Context, actor access.Actor, filter access.Filter) ([]models.Shift, error) {
	return s.shiftRepo.ListShifts(access.NewQuery(actor, access.KindShift, filter))
}

func (s *shiftService) GetShift(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Shift, error) {
	return visible(actor, access.KindShift, id, s.shiftRepo.GetShiftByID, access.ShiftRow)
}

// newShift validates req and builds the record. created_by is always the actor.
func (s *shiftService) newShift(actor access.Actor, req CreateShiftRequest) (*models.Shift, *ValidationError) {
	shift := &models.Shift{
		ID:                 uuid.New(),
		EmployeeID:         req.Employee,
		ShiftDate:          req.ShiftDate,
		TimeFrom:           req.TimeFrom,
		TimeTo:             req.TimeTo,
		ClientName:         strings.TrimSpace(req.ClientName),
		Notes:              req.Notes,
		CreatedByID:        &actor.ID,
		RegionID:           req.Region,
		SeekingReplacement: req.SeekingReplacement,
		OriginalEmployeeID: req.OriginalEmployee,
		OpenShift:          req.OpenShift,
	}
	v := &ValidationError{}
	validateShift(v, shift)
	if len(v.Fields) > 0 {
		return nil, v
	}
	return shift, nil
}

func validateShift(v *ValidationError, shift *models.Shift) {
	checkDate(v, "shift_date", &shift.ShiftDate)
	checkTime(v, "time_from", &shift.TimeFrom)
	checkTime(v, "time_to", &shift.TimeTo)
	checkTimeRange(v, shift.TimeFrom, shift.TimeTo)
}

func (s *shiftService) CreateShift(ctx context.Context, actor access.Actor, req CreateShiftRequest) (*models.Shift, error) {
	shift, verr := s.newShift(actor, req)
	if verr != nil {
		return nil, verr
	}
	if err := authorize(actor, access.KindShift, access.ActionCreate, access.ShiftRow(*shift)); err != nil {
		return nil, err
	}
	if err := s.shiftRepo.CreateShift(shift); err != nil {
		return nil, mapShiftWriteError(err)
	}
	return s.reload(shift.ID)
}

// BulkCreateShifts validates every item before storing any. The first
// invalid item fails the request with its index in the field names.
func (s *shiftService) BulkCreateShifts(ctx context.Context, actor access.Actor, req BulkCreateShiftsRequest) ([]models.Shift, error) {
	if len(req.Shifts) == 0 {
		return nil, NewValidationError("shifts", "no shifts provided")
	}

	shifts := make([]*models.Shift, 0, len(req.Shifts))
	for i, item := range req.Shifts {
		shift, verr := s.newShift(actor, item)
		if verr != nil {
			return nil, verr.prefixed(fmt.Sprintf("shifts[%d].", i))
		}
		if err := authorize(actor, access.KindShift, access.ActionCreate, access.ShiftRow(*shift)); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := s.shiftRepo.BulkCreateShifts(shifts); err != nil {
		return nil, mapShiftWriteError(err)
	}

	created := make([]models.Shift, 0, len(shifts))
	for _, shift := range shifts {
		stored, err := s.reload(shift.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, *stored)
	}
	return created, nil
}

// UpdateShift applies req. Employees may update their own shifts and claim
// open or replacement-seeking ones.
func (s *shiftService) UpdateShift(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.GetShift(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindShift, access.ActionUpdate, access.ShiftRow(*shift)); err != nil {
		return nil, err
	}

	req.Employee.apply(&shift.EmployeeID)
	req.Region.apply(&shift.RegionID)
	req.OriginalEmployee.apply(&shift.OriginalEmployeeID)
	if req.ShiftDate != nil {
		shift.ShiftDate = *req.ShiftDate
	}
	if req.TimeFrom != nil {
		shift.TimeFrom = *req.TimeFrom
	}
	if req.TimeTo != nil {
		shift.TimeTo = *req.TimeTo
	}
	if req.ClientName != nil {
		shift.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	if req.SeekingReplacement != nil {
		shift.SeekingReplacement = *req.SeekingReplacement
	}
	if req.OpenShift != nil {
		shift.OpenShift = *req.OpenShift
	}

	v := &ValidationError{}
	validateShift(v, shift)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.shiftRepo.UpdateShift(shift); err != nil {
		return nil, mapShiftWriteError(err)
	}
	return s.reload(shift.ID)
}

func (s *shiftService) DeleteShift(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	shift, err := s.GetShift(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindShift, access.ActionDelete, access.ShiftRow(*shift)); err != nil {
		return err
	}
	return mapRepoError(s.shiftRepo.DeleteShift(id), "id")
}

func (s *shiftService) reload(id uuid.UUID) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(id)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	return shift, nil
}

// mapShiftWriteError reports dangling employee or region references as validation errors.
func mapShiftWriteError(err error) error {
	if errors.Is(err, repositories.ErrInvalidReference) {
		return NewValidationError("shift", "references an employee or region that does not exist")
	}
	return mapRepoError(err, "id")
}
