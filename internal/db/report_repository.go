package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"zlecenia-backend-go/internal/models"
)

const reportsSubcollection = "reports"

// firestoreReportRepository implements the ReportRepository interface using
// the `reports` subcollection nested under each order document.
type firestoreReportRepository struct {
	client *firestore.Client
}

// NewFirestoreReportRepository creates a new instance of firestoreReportRepository.
func NewFirestoreReportRepository(client *firestore.Client) ReportRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ReportRepository.")
	}
	return &firestoreReportRepository{client: client}
}

func (r *firestoreReportRepository) reports(orderID string) *firestore.CollectionRef {
	return r.client.Collection(ordersCollection).Doc(orderID).Collection(reportsSubcollection)
}

// Add appends a report to the order's ledger and returns the new document ID.
// Existing reports are never touched.
func (r *firestoreReportRepository) Add(ctx context.Context, orderID string, report *models.Report) (string, error) {
	if orderID == "" {
		return "", errors.New("orderID cannot be empty for Add operation")
	}
	docRef := r.reports(orderID).NewDoc()
	report.ID = docRef.ID

	if _, err := docRef.Create(ctx, report); err != nil {
		return "", fmt.Errorf("failed to add report to order '%s': %w", orderID, err)
	}
	return docRef.ID, nil
}

// ListByOrder returns the order's reports, newest first.
func (r *firestoreReportRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.Report, error) {
	if orderID == "" {
		return nil, errors.New("orderID cannot be empty for ListByOrder operation")
	}
	iter := r.reports(orderID).OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var reports []*models.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reports for order '%s': %w", orderID, err)
		}

		var report models.Report
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Error decoding report data (order: %s, ID: %s): %v. Skipping.", orderID, doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, &report)
	}

	return reports, nil
}

// HasAny probes for at least one report with a limit-1 query.
func (r *firestoreReportRepository) HasAny(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, errors.New("orderID cannot be empty for HasAny operation")
	}
	iter := r.reports(orderID).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe reports for order '%s': %w", orderID, err)
	}
	return true, nil
}
