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

// --- Admin DTOs ---
type CreateUserRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	FullName  string     `json:"full_name" binding:"max=255"`
	Role      string     `json:"role" binding:"omitempty,oneof=admin employee"`
	RegionID  *uuid.UUID `json:"region_id"`
	SortOrder int        `json:"sort_order"`
}

type CreateUserResponse struct {
	User         *models.User `json:"user"`
	TempPassword string       `json:"temp_password"`
}

type ResetPasswordRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type ResetPasswordResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	TempPassword string    `json:"temp_password"`
}

// --- AdminService Interface ---
type AdminService interface {
	CreateUser(ctx context.Context, actor access.Actor, req CreateUserRequest) (*CreateUserResponse, error)
	ResetPassword(ctx context.Context, actor access.Actor, req ResetPasswordRequest) (*ResetPasswordResponse, error)
	// BootstrapAdmin creates an active admin unless a user with the email already exists.
	BootstrapAdmin(ctx context.Context, email, password, fullName string) (bool, error)
}

type adminService struct {
	userRepo repositories.UserRepository
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(userRepo repositories.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

// CreateUser provisions an account with a freshly generated temporary password.
func (s *adminService) CreateUser(ctx context.Context, actor access.Actor, req CreateUserRequest) (*CreateUserResponse, error) {
	if err := enforce(actor, access.KindProfile, access.ActionCreate, access.CanManageUsers(actor)); err != nil {
		return nil, err
	}

	v := &ValidationError{}
	user := &models.User{
		ID:        uuid.New(),
		Email:     checkEmail(v, req.Email),
		FullName:  strings.TrimSpace(req.FullName),
		Role:      models.RoleEmployee,
		RegionID:  req.RegionID,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.Role != "" {
		user.Role = checkRole(v, req.Role)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	tempPassword, hash, err := newTempPassword()
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrInvalidReference) {
			return nil, NewValidationError("region_id", "references a region that does not exist")
		}
		return nil, mapRepoError(err, "email")
	}
	created, err := s.userRepo.GetUserByID(user.ID)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	clean := created.Sanitized()

	utils.LogInfo("User provisioned", map[string]interface{}{
		"actor_id": actor.ID.String(),
		"user_id":  user.ID.String(),
		"role":     string(user.Role),
	})
	return &CreateUserResponse{User: &clean, TempPassword: tempPassword}, nil
}

// ResetPassword replaces the user's password with a new temporary one.
func (s *adminService) ResetPassword(ctx context.Context, actor access.Actor, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	if err := enforce(actor, access.KindProfile, access.ActionUpdate, access.CanManageUsers(actor)); err != nil {
		return nil, err
	}
	if req.UserID == uuid.Nil {
		return nil, NewValidationError("user_id", "is required")
	}
	if _, err := s.userRepo.GetUserByID(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewValidationError("user_id", "user not found")
		}
		return nil, err
	}

	tempPassword, hash, err := newTempPassword()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetPassword(req.UserID, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewValidationError("user_id", "user not found")
		}
		return nil, err
	}

	utils.LogInfo("Temporary password issued", map[string]interface{}{
		"actor_id": actor.ID.String(),
		"user_id":  req.UserID.String(),
	})
	return &ResetPasswordResponse{UserID: req.UserID, TempPassword: tempPassword}, nil
}

func (s *adminService) BootstrapAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	v := &ValidationError{}
	email = checkEmail(v, email)
	checkPassword(v, password)
	if err := v.OrNil(); err != nil {
		return false, err
	}

	_, err := s.userRepo.GetUserByEmail(email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		Role:         models.RoleAdmin,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func newTempPassword() (plain, hash string, err error) {
	plain, err = utils.GenerateTempPassword(utils.TempPasswordLength, utils.TempPasswordAlphabet)
	if err != nil {
		return "", "", err
	}
	hash, err = utils.HashPassword(plain)
	if err != nil {
		return "", "", err
	}
	return plain, hash, nil
}
