package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/services"
	"care_scheduler_backend/pkg/utils"
)

// ContextActorKey holds the access.Actor set by the auth middleware.
const ContextActorKey = "actor"

// actorFromContext returns the authenticated actor. It responds 401 and returns false when missing.
func actorFromContext(c *gin.Context) (access.Actor, bool) {
	raw, exists := c.Get(ContextActorKey)
	actor, ok := raw.(access.Actor)
	if !exists || !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing actor in context"))
		return access.Actor{}, false
	}
	return actor, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid ID format.", map[string]string{"id": "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseFilter(c *gin.Context) (access.Filter, bool) {
	f, err := access.ParseFilter(c.Request.URL.Query())
	if err != nil {
		var ferr *access.FilterError
		if errors.As(err, &ferr) {
			utils.RespondValidationFailed(c, err.Error(), map[string]string{ferr.Param: ferr.Message})
			return access.Filter{}, false
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid query parameters.", err.Error()))
		return access.Filter{}, false
	}
	return f, true
}

// bindJSON decodes the body into req and reports binding failures per field.
func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug(op+": Failed to bind JSON", map[string]interface{}{"error": err.Error()})
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fieldPath(fe)] = validationMessage(fe)
			}
			utils.RespondValidationFailed(c, "Invalid request payload.", fields)
			return false
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload.", err.Error()))
		return false
	}
	return true
}

// fieldPath strips the request struct name from the namespace: "CreateShiftRequest.shift_date" -> "shift_date".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "civildate":
		return "must be a date in YYYY-MM-DD format"
	case "clocktime":
		return "must be a time in HH:MM or HH:MM:SS format"
	case "weekday":
		return "must be between 0 (Monday) and 6 (Sunday)"
	}
	return "failed " + fe.Tag() + " validation"
}

// respondServiceError maps service errors onto the API error taxonomy.
func respondServiceError(c *gin.Context, err error, op, failMessage string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidationFailed(c, verr.Error(), verr.Fields)
	case errors.Is(err, services.ErrPermissionDenied):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to perform this action.", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Not found.", ""))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password.", ""))
	case errors.Is(err, services.ErrInvalidToken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token.", ""))
	default:
		utils.LogError(err, op)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failMessage, "Internal error"))
	}
}
