package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/service"
)

// respondServiceError maps service-layer errors onto HTTP statuses:
// validation and overlap problems are the caller's fault, missing
// aggregates are 404, ownership failures 403, everything else is a
// gateway failure reported as-is.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrOverlap):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrResolution):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrSplitNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrRunNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrInstanceNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDayAccessDenied),
		errors.Is(err, service.ErrSplitAccessDenied),
		errors.Is(err, service.ErrRunAccessDenied),
		errors.Is(err, service.ErrInstanceAccessDenied),
		errors.Is(err, service.ErrLogAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// requireUserID pulls the authenticated user id or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", false
	}
	return userID, true
}
