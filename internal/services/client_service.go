package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

// --- Client DTOs ---
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

type UpdateClientRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

// --- ClientService Interface ---
type ClientService interface {
	ListClients(ctx context.Context, actor access.Actor) ([]models.Client, error)
	GetClient(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Client, error)
	CreateClient(ctx context.Context, actor access.Actor, req CreateClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	cache      ReferenceCache
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, rc ReferenceCache) ClientService {
	return &clientService{clientRepo: repo, cache: rc}
}

func (s *clientService) validateClientData(v *ValidationError, c *models.Client) {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	checkRequired(v, "first_name", c.FirstName)
	checkRequired(v, "last_name", c.LastName)
}

func (s *clientService) ListClients(ctx context.Context, actor access.Actor) ([]models.Client, error) {
	q := access.NewQuery(actor, access.KindClient, access.Filter{})
	return cachedList(ctx, s.cache, clientsCachePrefix+"all", q, s.clientRepo.ListClients)
}

func (s *clientService) GetClient(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.Client, error) {
	return visible(actor, access.KindClient, id, s.clientRepo.GetClientByID, access.ClientRow)
}

func (s *clientService) CreateClient(ctx context.Context, actor access.Actor, req CreateClientRequest) (*models.Client, error) {
	if err := authorize(actor, access.KindClient, access.ActionCreate, nil); err != nil {
		return nil, err
	}
	client := &models.Client{ID: uuid.New(), FirstName: req.FirstName, LastName: req.LastName}
	v := &ValidationError{}
	s.validateClientData(v, client)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.CreateClient(client); err != nil {
		return nil, mapRepoError(err, "id")
	}
	s.cache.invalidate(ctx, clientsCachePrefix)
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.GetClient(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindClient, access.ActionUpdate, access.ClientRow(*client)); err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	v := &ValidationError{}
	s.validateClientData(v, client)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.UpdateClient(client); err != nil {
		return nil, mapRepoError(err, "id")
	}
	s.cache.invalidate(ctx, clientsCachePrefix)
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	client, err := s.GetClient(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindClient, access.ActionDelete, access.ClientRow(*client)); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteClient(id); err != nil {
		return mapRepoError(err, "id")
	}
	s.cache.invalidate(ctx, clientsCachePrefix)
	return nil
}
