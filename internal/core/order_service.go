package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/models"
)

// orderService implements the OrderService interface.
type orderService struct {
	orderRepo  db.OrderRepository
	reportRepo db.ReportRepository
	users      UserService
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(orderRepo db.OrderRepository, reportRepo db.ReportRepository, users UserService, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		reportRepo: reportRepo,
		users:      users,
		logger:     logger,
	}
}

// List returns orders matching the filter, newest first. Listing is public.
func (s *orderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID returns a single order.
func (s *orderService) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}
	return order, nil
}

// Create creates a self-serve order owned by the caller. Timestamps are
// stamped server-side, assignment starts empty, status defaults to open.
func (s *orderService) Create(ctx context.Context, ownerUID string, req models.CreateOrderRequest) (string, error) {
	order, err := buildOrder(ownerUID, req)
	if err != nil {
		return "", err
	}
	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

// AdminCreate creates an order with the admin-only extras: a normalized tools
// list and an optional explicit assignment.
func (s *orderService) AdminCreate(ctx context.Context, ownerUID string, req models.AdminCreateOrderRequest) (string, error) {
	order, err := buildOrder(ownerUID, req.CreateOrderRequest)
	if err != nil {
		return "", err
	}
	order.Tools = req.Tools
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		order.AssignedTo = req.AssignedTo
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func buildOrder(ownerUID string, req models.CreateOrderRequest) (*models.Order, error) {
	status := req.Status
	if status == "" {
		status = models.StatusOpen
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, req.Status)
	}
	return &models.Order{
		Title:       req.Title,
		Description: req.Description,
		Trade:       req.Trade,
		Status:      status,
		Price:       req.Price,
		Location:    req.Location,
		OwnerUID:    ownerUID,
		AssignedTo:  nil,
	}, nil
}

// Assign mutates the order's assignment. The caller's role is resolved fresh
// from the profile store: workers may claim only an unassigned order of their
// own trade (checked transactionally), admins may assign any worker_uid.
// Denial never leaves a partial mutation behind.
func (s *orderService) Assign(ctx context.Context, callerUID, orderID string, req models.AssignOrderRequest) error {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	role, profile := s.users.ResolveRole(ctx, callerUID)
	switch role {
	case models.RoleWorker:
		if err := canClaim(profile, order); err != nil {
			return err
		}
		if err := s.orderRepo.Claim(ctx, orderID, callerUID); err != nil {
			switch {
			case errors.Is(err, db.ErrAlreadyAssigned):
				return ErrAlreadyAssigned
			case errors.Is(err, db.ErrNotFound):
				return fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
			}
			return fmt.Errorf("failed to claim order '%s': %w", orderID, err)
		}
		return nil

	case models.RoleAdmin:
		if req.WorkerUID == "" {
			return ErrMissingWorkerUID
		}
		if err := s.orderRepo.Assign(ctx, orderID, req.WorkerUID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
			}
			return fmt.Errorf("failed to assign order '%s': %w", orderID, err)
		}
		return nil
	}

	return ErrForbidden
}

// AvailableOrders returns open, unassigned orders for the admin view, each
// annotated with the hasReports probe.
func (s *orderService) AvailableOrders(ctx context.Context) ([]*models.AdminOrderView, error) {
	orders, err := s.orderRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available orders: %w", err)
	}

	views := make([]*models.AdminOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, &models.AdminOrderView{
			Order:      *order,
			HasReports: s.hasReports(ctx, order.ID),
		})
	}
	return views, nil
}

// CurrentOrders returns all orders for the admin view, each joined with the
// assigned worker's profile and the hasReports probe.
func (s *orderService) CurrentOrders(ctx context.Context) ([]*models.AdminOrderView, error) {
	orders, err := s.orderRepo.List(ctx, models.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]*models.AdminOrderView, 0, len(orders))
	for _, order := range orders {
		view := &models.AdminOrderView{
			Order:      *order,
			HasReports: s.hasReports(ctx, order.ID),
		}
		if order.AssignedTo != nil {
			view.AssignedUser = s.assignedUser(ctx, *order.AssignedTo)
		}
		views = append(views, view)
	}
	return views, nil
}

// hasReports degrades to false when the probe fails; the listing itself
// still succeeds.
func (s *orderService) hasReports(ctx context.Context, orderID string) bool {
	has, err := s.reportRepo.HasAny(ctx, orderID)
	if err != nil {
		s.logger.Warn("Failed to probe reports, defaulting hasReports to false",
			zap.String("orderID", orderID), zap.Error(err))
		return false
	}
	return has
}

// assignedUser joins the assigned worker's profile onto the view. A missing
// profile yields the bare UID.
func (s *orderService) assignedUser(ctx context.Context, uid string) *models.AssignedUser {
	profile, err := s.users.GetProfile(ctx, uid)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("Failed to join assigned user profile",
				zap.String("uid", uid), zap.Error(err))
		}
		return &models.AssignedUser{UID: uid}
	}
	return &models.AssignedUser{
		UID:         uid,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		Trade:       profile.Trade,
	}
}
