package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Region DTOs ---
type CreateRegionRequest struct {
	Name         string    `json:"name" binding:"required,max=255"`
	Description  *string   `json:"description"`
	FederalState uuid.UUID `json:"federal_state" binding:"required"`
	SortOrder    int       `json:"sort_order"`
}

type UpdateRegionRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=255"`
	Description  *string    `json:"description"`
	FederalState *uuid.UUID `json:"federal_state"`
	SortOrder    *int       `json:"sort_order"`
}

// --- RegionService Interface ---
type RegionService interface {
	ListRegions(ctx context.Context, actor access.Actor) ([]models.Region, error)
	GetRegion(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Region, error)
	CreateRegion(ctx context.Context, actor access.Actor, req CreateRegionRequest) (*models.Region, error)
	UpdateRegion(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateRegionRequest) (*models.Region, error)
	DeleteRegion(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type regionService struct {
	regionRepo repositories.RegionRepository
}

// NewRegionService creates a new instance of RegionService.
func NewRegionService(repo repositories.RegionRepository) RegionService {
	return &regionService{regionRepo: repo}
}

// ListRegions returns every region to admins and only their own region to employees.
func (s *regionService) ListRegions(ctx context.Context, actor access.Actor) ([]models.Region, error) {
	return s.regionRepo.ListRegions(access.NewQuery(actor, access.KindRegion, access.Filter{}))
}

func (s *regionService) GetRegion(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Region, error) {
	return visible(actor, access.KindRegion, id, s.regionRepo.GetRegionByID, access.RegionRow)
}

func (s *regionService) CreateRegion(ctx context.Context, actor access.Actor, req CreateRegionRequest) (*models.Region, error) {
	if err := authorize(actor, access.KindRegion, access.ActionCreate, nil); err != nil {
		return nil, err
	}
	region := &models.Region{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		FederalStateID: req.FederalState,
		SortOrder:      req.SortOrder,
	}
	v := &ValidationError{}
	checkRequired(v, "name", region.Name)
	if region.FederalStateID == uuid.Nil {
		v.Add("federal_state", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.regionRepo.CreateRegion(region); err != nil {
		return nil, mapRepoError(err, "federal_state")
	}
	return s.regionRepo.GetRegionByID(region.ID)
}

func (s *regionService) UpdateRegion(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateRegionRequest) (*models.Region, error) {
	region, err := s.GetRegion(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindRegion, access.ActionUpdate, access.RegionRow(*region)); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	if req.Name != nil {
		region.Name = strings.TrimSpace(*req.Name)
		checkRequired(v, "name", region.Name)
	}
	if req.Description != nil {
		region.Description = req.Description
	}
	if req.FederalState != nil {
		region.FederalStateID = *req.FederalState
	}
	if req.SortOrder != nil {
		region.SortOrder = *req.SortOrder
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.regionRepo.UpdateRegion(region); err != nil {
		return nil, mapRepoError(err, "federal_state")
	}
	return s.regionRepo.GetRegionByID(region.ID)
}

// DeleteRegion leaves users and shifts of the region in place without a region.
func (s *regionService) DeleteRegion(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	region, err := s.GetRegion(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindRegion, access.ActionDelete, access.RegionRow(*region)); err != nil {
		return err
	}
	return mapRepoError(s.regionRepo.DeleteRegion(id), "id")
}
