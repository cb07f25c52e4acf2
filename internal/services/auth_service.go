package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest DTO
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenUser is the compact user summary returned on login.
type TokenUser struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
	RegionID *uuid.UUID  `json:"region_id"`
}

// AuthResponse DTO
type AuthResponse struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    TokenUser `json:"user"`
}

// RefreshResponse DTO
type RefreshResponse struct {
	Access string `json:"access"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	Me(ctx context.Context, actor access.Actor) (*models.User, error)
	// ResolveActor loads the current state of the user behind an access token.
	ResolveActor(ctx context.Context, userID string) (access.Actor, error)
}

// --- authService Implementation ---
type authService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *utils.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Login checks credentials and issues an access/refresh token pair.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !user.IsActive || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	utils.LogInfo("User logged in", map[string]interface{}{"user_id": user.ID.String()})
	return &AuthResponse{
		Access:  accessToken,
		Refresh: refreshToken,
		User: TokenUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
			RegionID: user.RegionID,
		},
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The user must still be active.
func (s *authService) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := s.tokens.ValidateToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		utils.LogDebug("Refresh token rejected", map[string]interface{}{"reason": err.Error()})
		return nil, ErrInvalidToken
	}
	user, err := s.activeUser(claims.UserID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{Access: accessToken}, nil
}

func (s *authService) Me(ctx context.Context, actor access.Actor) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	clean := user.Sanitized()
	return &clean, nil
}

func (s *authService) ResolveActor(ctx context.Context, userID string) (access.Actor, error) {
	user, err := s.activeUser(userID)
	if err != nil {
		return access.Actor{}, err
	}
	return access.ActorFromUser(*user), nil
}

func (s *authService) activeUser(rawID string) (*models.User, error) {
	id, err := utils.ParseUUID(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}
