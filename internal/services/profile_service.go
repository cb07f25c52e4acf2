package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/pkg/utils"
)

// --- Profile DTOs ---
type CreateProfileRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	FullName  string     `json:"full_name" binding:"max=255"`
	Role      string     `json:"role" binding:"omitempty,oneof=admin employee"`
	Region    *uuid.UUID `json:"region"`
	SortOrder int        `json:"sort_order"`
	IsActive  *bool      `json:"is_active"`
	Password  *string    `json:"password"`
}

// UpdateProfileRequest is a partial update. Region distinguishes "absent" from "null".
type UpdateProfileRequest struct {
	Email     *string    `json:"email" binding:"omitempty,email"`
	FullName  *string    `json:"full_name" binding:"omitempty,max=255"`
	Role      *string    `json:"role" binding:"omitempty,oneof=admin employee"`
	Region    OptionalID `json:"region"`
	SortOrder *int       `json:"sort_order"`
	IsActive  *bool      `json:"is_active"`
	Password  *string    `json:"password"`
}

// --- ProfileService Interface ---
type ProfileService interface {
	ListProfiles(ctx context.Context, actor access.Actor) ([]models.User, error)
	GetProfile(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.User, error)
	CreateProfile(ctx context.Context, actor access.Actor, req CreateProfileRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateProfileRequest) (*models.User, error)
	DeleteProfile(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type profileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) ListProfiles(ctx context.Context, actor access.Actor) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(access.NewQuery(actor, access.KindProfile, access.Filter{}))
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

func (s *profileService) GetProfile(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.User, error) {
	user, err := visible(actor, access.KindProfile, id, s.userRepo.GetUserByID, access.ProfileRow)
	if err != nil {
		return nil, err
	}
	clean := user.Sanitized()
	return &clean, nil
}

// CreateProfile adds an account directly. Without a password the account
// cannot log in until an admin issues a temporary password.
func (s *profileService) CreateProfile(ctx context.Context, actor access.Actor, req CreateProfileRequest) (*models.User, error) {
	if err := authorize(actor, access.KindProfile, access.ActionCreate, nil); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	user := &models.User{
		ID:        uuid.New(),
		Email:     checkEmail(v, req.Email),
		FullName:  strings.TrimSpace(req.FullName),
		Role:      models.RoleEmployee,
		RegionID:  req.Region,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.Role != "" {
		user.Role = checkRole(v, req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	password := ""
	if req.Password != nil {
		password = *req.Password
		checkPassword(v, password)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if password == "" {
		unusable, err := utils.GenerateTempPassword(32, utils.TempPasswordAlphabet)
		if err != nil {
			return nil, err
		}
		password = unusable
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return s.GetProfile(ctx, actor, user.ID)
}

func (s *profileService) UpdateProfile(ctx context.Context, actor access.Actor, id uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	user, err := visible(actor, access.KindProfile, id, s.userRepo.GetUserByID, access.ProfileRow)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, access.KindProfile, access.ActionUpdate, access.ProfileRow(*user)); err != nil {
		return nil, err
	}
	if changesPrivilegedFields(user, req) {
		d := access.CanChangePrivilegedProfileFields(actor)
		if err := enforce(actor, access.KindProfile, access.ActionUpdate, d); err != nil {
			return nil, err
		}
	}

	v := &ValidationError{}
	if req.Email != nil {
		user.Email = checkEmail(v, *req.Email)
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		user.Role = checkRole(v, *req.Role)
	}
	req.Region.apply(&user.RegionID)
	if req.SortOrder != nil {
		user.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		checkPassword(v, *req.Password)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	hash := ""
	if req.Password != nil {
		if hash, err = utils.HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, mapUserWriteError(err)
	}
	if hash != "" {
		if err := s.userRepo.SetPassword(user.ID, hash); err != nil {
			return nil, mapRepoError(err, "id")
		}
	}
	return s.GetProfile(ctx, actor, user.ID)
}

func (s *profileService) DeleteProfile(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	user, err := visible(actor, access.KindProfile, id, s.userRepo.GetUserByID, access.ProfileRow)
	if err != nil {
		return err
	}
	if err := authorize(actor, access.KindProfile, access.ActionDelete, access.ProfileRow(*user)); err != nil {
		return err
	}
	return mapRepoError(s.userRepo.DeleteUser(id), "id")
}

// changesPrivilegedFields reports whether req alters role, region, active flag or sort order.
func changesPrivilegedFields(current *models.User, req UpdateProfileRequest) bool {
	if req.Role != nil && models.Role(strings.ToLower(strings.TrimSpace(*req.Role))) != current.Role {
		return true
	}
	if req.Region.Set && !sameRef(req.Region.Value, current.RegionID) {
		return true
	}
	if req.IsActive != nil && *req.IsActive != current.IsActive {
		return true
	}
	return req.SortOrder != nil && *req.SortOrder != current.SortOrder
}

func sameRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// mapUserWriteError maps duplicate emails and unknown regions to field errors.
func mapUserWriteError(err error) error {
	if errors.Is(err, repositories.ErrInvalidReference) {
		return NewValidationError("region", "references a region that does not exist")
	}
	return mapRepoError(err, "email")
}
