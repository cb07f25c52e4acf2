package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/handlers"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/pkg/utils"
)

// ActorResolver loads the current actor for a token subject.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (access.Actor, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication. The user is
// reloaded on every request, so deactivation and role changes apply immediately.
func AuthMiddleware(tokens *utils.TokenManager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := tokens.ValidateToken(parts[1], utils.TokenTypeAccess)
		if err != nil {
			utils.LogDebug("Access token rejected", map[string]interface{}{"reason": err.Error()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", ""))
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.LogDebug("Token subject rejected", map[string]interface{}{"user_id": claims.UserID, "reason": err.Error()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not found or inactive", ""))
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(handlers.ContextActorKey, actor)
		c.Set(utils.ContextActorIDKey, actor.ID.String())

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks the role of the actor loaded by AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(handlers.ContextActorKey)
		actor, ok := raw.(access.Actor)
		if !exists || !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated. Ensure AuthMiddleware runs first.", ""))
			return
		}

		for _, r := range allowedRoles {
			if actor.Role == r {
				c.Next()
				return
			}
		}

		names := make([]string, len(allowedRoles))
		for i, r := range allowedRoles {
			names[i] = string(r)
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to access this resource. Required roles: "+strings.Join(names, ", "), ""))
	}
}
