package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
)

// ErrAccountNotFound is returned by LookupByEmail when no account exists.
var ErrAccountNotFound = errors.New("account not found")

// IdentityAdmin wraps the Firebase Auth admin client behind the capability
// surface the services need: account creation, role claims, email lookup.
// It is used by admin provisioning only, never on the request path.
type IdentityAdmin struct {
	client *fbauth.Client
}

// NewIdentityAdmin creates a new IdentityAdmin instance.
func NewIdentityAdmin(client *fbauth.Client) *IdentityAdmin {
	if client == nil {
		log.Fatal("Firebase Auth client is not initialized for IdentityAdmin.")
	}
	return &IdentityAdmin{client: client}
}

// CreateAccount creates a Firebase Auth account and returns its UID.
func (a *IdentityAdmin) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	record, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create auth account for '%s': %w", email, err)
	}
	return record.UID, nil
}

// SetRoleClaim stores the role as a custom claim on the account. The claim
// exists for client-side security rules; the backend never trusts it for
// authorization decisions.
func (a *IdentityAdmin) SetRoleClaim(ctx context.Context, uid, role string) error {
	if err := a.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		return fmt.Errorf("failed to set role claim for '%s': %w", uid, err)
	}
	return nil
}

// LookupByEmail returns the UID of the account registered under email.
func (a *IdentityAdmin) LookupByEmail(ctx context.Context, email string) (string, error) {
	record, err := a.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", fmt.Errorf("no account for '%s': %w", email, ErrAccountNotFound)
		}
		return "", fmt.Errorf("failed to look up account by email '%s': %w", email, err)
	}
	return record.UID, nil
}
