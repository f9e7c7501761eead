package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/models"
)

// reportService implements the ReportService interface.
type reportService struct {
	orderRepo  db.OrderRepository
	reportRepo db.ReportRepository
	users      UserService
}

// NewReportService creates a new ReportService instance.
func NewReportService(orderRepo db.OrderRepository, reportRepo db.ReportRepository, users UserService) ReportService {
	return &reportService{
		orderRepo:  orderRepo,
		reportRepo: reportRepo,
		users:      users,
	}
}

// Append adds a report to the order's ledger. Only an admin or the currently
// assigned worker may report; the authorization check runs before text
// validation. The author name is the profile's display name, falling back to
// the token's name claim when the profile carries none.
func (s *reportService) Append(ctx context.Context, callerUID, callerName, orderID, text string) (string, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
		}
		return "", fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}

	role, profile := s.users.ResolveRole(ctx, callerUID)
	if !canReport(role, callerUID, order) {
		return "", ErrForbidden
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReportText
	}

	authorName := profile.DisplayName
	if authorName == "" {
		authorName = callerName
	}

	report := &models.Report{
		AuthorUID:  callerUID,
		AuthorName: authorName,
		Text:       text,
	}
	id, err := s.reportRepo.Add(ctx, orderID, report)
	if err != nil {
		return "", fmt.Errorf("failed to append report to order '%s': %w", orderID, err)
	}
	return id, nil
}

// ListByOrder returns the order's reports, newest first.
func (s *reportService) ListByOrder(ctx context.Context, orderID string) ([]*models.Report, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}

	reports, err := s.reportRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for order '%s': %w", orderID, err)
	}
	return reports, nil
}
