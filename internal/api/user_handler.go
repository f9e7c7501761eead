package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/middleware"
	"zlecenia-backend-go/internal/models"
)

// UserHandler handles user-profile related API endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// Me handles GET /me. It returns the caller's stored profile; when no profile
// document exists yet it falls back to the token claims with the worker role.
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusOK, MeResponse{
				UID:   uid,
				Email: c.GetString(middleware.ContextUserEmail),
				Name:  c.GetString(middleware.ContextDisplayName),
				Role:  models.RoleWorker,
			})
			return
		}
		log.Printf("Me: failed to load profile for %s: %v", uid, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
