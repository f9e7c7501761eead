package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zlecenia-backend-go/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// GetByID retrieves a user profile by its Firebase Auth UID.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID

	return &user, nil
}

// Set writes a user profile with merge semantics so provisioning can run
// against accounts that already have a partial profile.
func (r *firestoreUserRepository) Set(ctx context.Context, uid string, user *models.User) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Set operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set user '%s': %w", uid, err)
	}
	return nil
}
