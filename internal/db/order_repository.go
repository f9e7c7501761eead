package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zlecenia-backend-go/internal/models"
)

const ordersCollection = "orders"

// firestoreOrderRepository implements the OrderRepository interface using Firestore.
type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository creates a new instance of firestoreOrderRepository.
func NewFirestoreOrderRepository(client *firestore.Client) OrderRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OrderRepository.")
	}
	return &firestoreOrderRepository{client: client}
}

// Create adds a new order document with an auto-generated ID and returns it.
// CreatedAt/UpdatedAt are stamped server-side via the serverTimestamp tags.
func (r *firestoreOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	docRef := r.client.Collection(ordersCollection).NewDoc()
	order.ID = docRef.ID

	if _, err := docRef.Create(ctx, order); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves an order document by its ID.
func (r *firestoreOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, errors.New("orderID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(ordersCollection).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("order '%s' not found: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}

	var order models.Order
	if err := docSnap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order data for '%s': %w", orderID, err)
	}
	order.ID = docSnap.Ref.ID

	return &order, nil
}

// List returns orders matching the filter ordered by creation time,
// descending. The result set is unbounded; at this system's scale that is an
// accepted limit.
func (r *firestoreOrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	query := r.client.Collection(ordersCollection).Query
	if filter.Trade != "" {
		query = query.Where("trade", "==", filter.Trade)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	query = query.OrderBy("created_at", firestore.Desc)

	return r.collect(ctx, query)
}

// ListAvailable returns open, unassigned orders, newest first. Unassigned is
// a literal Firestore null, which is what the clients write and query.
func (r *firestoreOrderRepository) ListAvailable(ctx context.Context) ([]*models.Order, error) {
	query := r.client.Collection(ordersCollection).
		Where("status", "==", models.StatusOpen).
		Where("assignedTo", "==", nil).
		OrderBy("created_at", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreOrderRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Order, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var orders []*models.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var order models.Order
		if err := doc.DataTo(&order); err != nil {
			log.Printf("Error decoding order data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		order.ID = doc.Ref.ID
		orders = append(orders, &order)
	}

	return orders, nil
}

// Claim assigns the order to workerUID only if it is still unassigned. The
// check and the write run in one transaction, so two workers racing for the
// same order cannot both win: the loser gets ErrAlreadyAssigned.
func (r *firestoreOrderRepository) Claim(ctx context.Context, orderID, workerUID string) error {
	if orderID == "" || workerUID == "" {
		return errors.New("orderID and workerUID cannot be empty for Claim operation")
	}
	ref := r.client.Collection(ordersCollection).Doc(orderID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("order '%s' not found: %w", orderID, ErrNotFound)
			}
			return fmt.Errorf("failed to read order '%s' in claim transaction: %w", orderID, err)
		}

		var order models.Order
		if err := snap.DataTo(&order); err != nil {
			return fmt.Errorf("failed to decode order '%s' in claim transaction: %w", orderID, err)
		}
		if order.AssignedTo != nil {
			return fmt.Errorf("order '%s': %w", orderID, ErrAlreadyAssigned)
		}

		return tx.Update(ref, assignmentUpdates(workerUID))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyAssigned) {
			return err
		}
		return fmt.Errorf("claim transaction for order '%s' failed: %w", orderID, err)
	}
	return nil
}

// Assign unconditionally assigns the order to workerUID. Admins may
// deliberately reassign an order, so no claim check applies here.
func (r *firestoreOrderRepository) Assign(ctx context.Context, orderID, workerUID string) error {
	if orderID == "" || workerUID == "" {
		return errors.New("orderID and workerUID cannot be empty for Assign operation")
	}
	ref := r.client.Collection(ordersCollection).Doc(orderID)

	_, err := ref.Update(ctx, assignmentUpdates(workerUID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("order '%s' not found: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("failed to assign order '%s': %w", orderID, err)
	}
	return nil
}

func assignmentUpdates(workerUID string) []firestore.Update {
	return []firestore.Update{
		{Path: "assignedTo", Value: workerUID},
		{Path: "status", Value: models.StatusAssigned},
		{Path: "updated_at", Value: firestore.ServerTimestamp},
	}
}
