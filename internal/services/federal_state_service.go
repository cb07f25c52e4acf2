package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Federal State DTOs ---
type CreateFederalStateRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	SortOrder int    `json:"sort_order"`
}

type UpdateFederalStateRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	SortOrder *int    `json:"sort_order"`
}

// --- FederalStateService Interface ---
type FederalStateService interface {
	ListFederalStates(ctx context.Context, actor access.Actor) ([]models.FederalState, error)
	GetFederalState(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.FederalState, error)
	CreateFederalState(ctx context.Context, actor access.Actor, req CreateFederalStateRequest) (*models.FederalState, error)
	UpdateFederalState(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateFederalStateRequest) (*models.FederalState, error)
	DeleteFederalState(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type federalStateService struct {
	repo  repositories.FederalStateRepository
	cache ReferenceCache
}

// NewFederalStateService creates a new instance of FederalStateService.
func NewFederalStateService(repo repositories.FederalStateRepository, rc ReferenceCache) FederalStateService {
	return &federalStateService{repo: repo, cache: rc}
}

func (s *federalStateService) ListFederalStates(ctx context.Context, actor access.Actor) ([]models.FederalState, error) {
	q := access.NewQuery(actor, access.KindFederalState, access.Filter{})
	return cachedList(ctx, s.cache, federalStatesCachePrefix+"all", q, s.repo.ListFederalStates)
}

func (s *federalStateService) GetFederalState(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.FederalState, error) {
	return visible(actor, access.KindFederalState, id, s.repo.GetFederalStateByID, access.FederalStateRow)
}

func (s *federalStateService) CreateFederalState(ctx context.Context, actor access.Actor, req CreateFederalStateRequest) (*models.FederalState, error) {
	if err := authorize(actor, access.KindFederalState, access.ActionCreate, nil); err != nil {
		return nil, err
	}
	fs := &models.FederalState{ID: uuid.New(), Name: strings.TrimSpace(req.Name), SortOrder: req.SortOrder}
	v := &ValidationError{}
	checkRequired(v, "name", fs.Name)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateFederalState(fs); err != nil {
		return nil, mapRepoError(err, "name")
	}
	s.cache.invalidate(ctx, federalStatesCachePrefix)
	return fs, nil
}

func (s *federalStateService) UpdateFederalState(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateFederalStateRequest) (*models.FederalState, error) {
	fs, err := s.GetFederalState(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindFederalState, access.ActionUpdate, access.FederalStateRow(*fs)); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	if req.Name != nil {
		fs.Name = strings.TrimSpace(*req.Name)
		checkRequired(v, "name", fs.Name)
	}
	if req.SortOrder != nil {
		fs.SortOrder = *req.SortOrder
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFederalState(fs); err != nil {
		return nil, mapRepoError(err, "name")
	}
	s.cache.invalidate(ctx, federalStatesCachePrefix)
	return fs, nil
}

// DeleteFederalState cascades to the regions of the state.
func (s *federalStateService) DeleteFederalState(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	fs, err := s.GetFederalState(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindFederalState, access.ActionDelete, access.FederalStateRow(*fs)); err != nil {
		return err
	}
	if err := s.repo.DeleteFederalState(id); err != nil {
		return mapRepoError(err, "id")
	}
	s.cache.invalidate(ctx, federalStatesCachePrefix)
	return nil
}
