package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/config"
	"zlecenia-backend-go/internal/middleware"
)

// DebugHandler exposes the diagnostics endpoints used when chasing token and
// project misconfiguration issues from a REST client.
type DebugHandler struct {
	appConfig *config.Config
	verifier  middleware.TokenVerifier
}

// NewDebugHandler creates a new DebugHandler.
func NewDebugHandler(appConfig *config.Config, verifier middleware.TokenVerifier) *DebugHandler {
	return &DebugHandler{appConfig: appConfig, verifier: verifier}
}

// SAProject handles GET /_debug/sa_project: confirms which Firebase project
// the backend verifies tokens against.
func (h *DebugHandler) SAProject(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service_account_project_id": h.appConfig.FirebaseProjectID})
}

// VerifyToken handles POST /_debug/verify_token: manually verifies a token
// supplied in the body.
func (h *DebugHandler) VerifyToken(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token is required in body"})
		return
	}

	claims, err := h.verifier.Verify(c.Request.Context(), body.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "uid": claims.UID, "email": claims.Email, "name": claims.Name})
}
