package core

import (
	"context"

	"zlecenia-backend-go/internal/models"
)

// UserService defines the interface for profile lookup, role resolution and
// admin account provisioning.
type UserService interface {
	// GetProfile returns the stored profile, or ErrUserNotFound.
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	// ResolveRole returns the caller's current role and profile, read fresh
	// from the profile store. A missing profile resolves to RoleWorker with
	// an empty profile: least privilege instead of failure.
	ResolveRole(ctx context.Context, uid string) (string, *models.User)
	// CreateUser provisions an account in the identity provider and writes
	// the matching profile document. Returns the new UID.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (string, error)
}

// OrderService defines the interface for the order lifecycle.
type OrderService interface {
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	Create(ctx context.Context, ownerUID string, req models.CreateOrderRequest) (string, error)
	AdminCreate(ctx context.Context, ownerUID string, req models.AdminCreateOrderRequest) (string, error)
	// Assign routes to the worker self-claim or the admin assignment path
	// depending on the caller's freshly resolved role.
	Assign(ctx context.Context, callerUID, orderID string, req models.AssignOrderRequest) error
	// AvailableOrders is the admin view of open, unassigned orders.
	AvailableOrders(ctx context.Context) ([]*models.AdminOrderView, error)
	// CurrentOrders is the admin view of all orders with assigned-worker joins.
	CurrentOrders(ctx context.Context) ([]*models.AdminOrderView, error)
}

// ReportService defines the interface for the append-only report ledger.
type ReportService interface {
	// Append adds a report authored by the caller. callerName is the token's
	// display name, used when the profile carries none.
	Append(ctx context.Context, callerUID, callerName, orderID, text string) (string, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Report, error)
}

// IdentityProvider is the capability surface consumed from the identity
// platform for provisioning. The request path never uses it.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	SetRoleClaim(ctx context.Context, uid, role string) error
	LookupByEmail(ctx context.Context, email string) (string, error)
}
