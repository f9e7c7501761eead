package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/auth"
	"zlecenia-backend-go/internal/models"
)

// Context keys populated by VerifyToken for downstream handlers.
const (
	ContextUserID      = "userID"
	ContextUserEmail   = "userEmail"
	ContextDisplayName = "userDisplayName"
)

// ErrorResponse is a local definition for sending standardized error messages.
// It mirrors the one in internal/api/dto_models.go to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TokenVerifier validates a bearer credential and returns its claims. The
// production implementation is auth.Verifier with its clock-skew retry loop.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.Claims, error)
}

// RoleResolver resolves the caller's current role from the profile store.
// Implemented by core.UserService.
type RoleResolver interface {
	ResolveRole(ctx context.Context, uid string) (string, *models.User)
}

// AuthMiddleware provides Gin middleware for Firebase token authentication
// and role gating.
type AuthMiddleware struct {
	verifier TokenVerifier
	roles    RoleResolver
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(verifier TokenVerifier, roles RoleResolver) *AuthMiddleware {
	if verifier == nil {
		log.Fatal("CRITICAL_ERROR: token verifier is not initialized for AuthMiddleware.")
	}
	return &AuthMiddleware{verifier: verifier, roles: roles}
}

// VerifyToken verifies the Firebase ID token from the Authorization header
// and, if valid, stores the identity claims in the Gin context. Claims are an
// identity assertion only; authorization decisions happen against the profile
// store downstream.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}
		idToken := parts[1]

		claims, err := m.verifier.Verify(c.Request.Context(), idToken)
		if err != nil {
			log.Printf("AuthMiddleware: token verification failed: %v", err)
			// Generic message to the client; specifics stay server-side.
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(ContextUserID, claims.UID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextDisplayName, claims.Name)

		c.Next()
	}
}

// RequireAdmin gates a route on the admin role, resolved fresh from the
// profile store on every request. Must run after VerifyToken.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(ContextUserID)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
			return
		}

		role, _ := m.roles.ResolveRole(c.Request.Context(), uid)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
			return
		}

		c.Next()
	}
}
