package db

import (
	"context"

	"zlecenia-backend-go/internal/models"
)

// UserRepository defines the interface for user profile storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	// Set writes a profile with merge semantics; the document ID is the
	// Firebase Auth UID, so provisioning can upsert safely.
	Set(ctx context.Context, uid string, user *models.User) error
}

// OrderRepository defines the interface for order storage operations.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	// ListAvailable returns open, unassigned orders, newest first.
	ListAvailable(ctx context.Context) ([]*models.Order, error)
	// Claim assigns the order to workerUID only if it is still unassigned,
	// checked and written inside a single transaction. Returns
	// ErrAlreadyAssigned when another worker won the claim.
	Claim(ctx context.Context, orderID, workerUID string) error
	// Assign unconditionally assigns the order to workerUID (admin path).
	Assign(ctx context.Context, orderID, workerUID string) error
}

// ReportRepository defines the interface for the append-only report ledger
// nested under each order.
type ReportRepository interface {
	Add(ctx context.Context, orderID string, report *models.Report) (string, error)
	// ListByOrder returns reports for the order, newest first.
	ListByOrder(ctx context.Context, orderID string) ([]*models.Report, error)
	// HasAny probes whether the order has at least one report.
	HasAny(ctx context.Context, orderID string) (bool, error)
}
