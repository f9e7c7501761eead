package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	identity IdentityProvider
	logger   *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, identity IdentityProvider, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		identity: identity,
		logger:   logger,
	}
}

// GetProfile returns the stored profile for uid.
func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user '%s' from repository: %w", uid, err)
	}
	return user, nil
}

// ResolveRole returns the caller's current role and profile, read fresh from
// Firestore on every call. Token claims can be stale relative to role changes
// made after the credential was minted, so they are never consulted here.
// A missing profile (or a lookup failure) resolves to the least-privileged
// worker role with an empty profile.
func (s *userService) ResolveRole(ctx context.Context, uid string) (string, *models.User) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("Role lookup failed, falling back to worker",
				zap.String("uid", uid), zap.Error(err))
		}
		return models.RoleWorker, &models.User{UID: uid, Role: models.RoleWorker}
	}
	if user.Role == "" {
		user.Role = models.RoleWorker
	}
	return user.Role, user
}

// CreateUser provisions an account in the identity provider, sets the role
// custom claim, and writes the profile document. A failure to set the claim
// is logged and tolerated: the profile store is the authorization source of
// truth, the claim only feeds client-side rules.
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (string, error) {
	role := req.Role
	if role == "" {
		role = models.RoleWorker
	}
	if !models.ValidRole(role) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidRole, req.Role)
	}

	uid, err := s.identity.CreateAccount(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return "", fmt.Errorf("failed to create account for '%s': %w", req.Email, err)
	}

	if err := s.identity.SetRoleClaim(ctx, uid, role); err != nil {
		s.logger.Warn("Failed to set role claim, continuing",
			zap.String("uid", uid), zap.Error(err))
	}

	profile := &models.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
		Trade:       req.Trade,
	}
	if err := s.userRepo.Set(ctx, uid, profile); err != nil {
		return "", fmt.Errorf("account '%s' created but profile write failed: %w", uid, err)
	}

	return uid, nil
}
