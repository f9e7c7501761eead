package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/core"
)

// respondServiceError converts a service error into a JSON error response
// with the conventional status code. Anything outside the known taxonomy is
// an upstream failure and maps to 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrOrderNotFound), errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrForbidden), errors.Is(err, core.ErrTradeMismatch):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrAlreadyAssigned):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrMissingWorkerUID),
		errors.Is(err, core.ErrEmptyReportText),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// callerUID pulls the authenticated caller's UID from the Gin context. An
// empty value means the auth middleware did not run; respond 401.
func callerUID(c *gin.Context) (string, bool) {
	uid := c.GetString("userID")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	return uid, true
}
