package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zlecenia-backend-go/internal/models"
)

func newOrderTestEnv(users ...*models.User) (*fakeOrderRepo, *fakeReportRepo, OrderService) {
	userRepo := newFakeUserRepo(users...)
	orderRepo := newFakeOrderRepo()
	reportRepo := newFakeReportRepo()
	userSvc := NewUserService(userRepo, newFakeIdentity(), zap.NewNop())
	return orderRepo, reportRepo, NewOrderService(orderRepo, reportRepo, userSvc, zap.NewNop())
}

func TestOrderServiceCreateDefaults(t *testing.T) {
	orderRepo, _, svc := newOrderTestEnv()

	id, err := svc.Create(context.Background(), "a1", models.CreateOrderRequest{
		Title: "Naprawa dachu",
		Trade: "dekarz",
	})
	require.NoError(t, err)

	order := orderRepo.orders[id]
	require.NotNil(t, order)
	assert.Equal(t, models.StatusOpen, order.Status)
	assert.Nil(t, order.AssignedTo)
	assert.Equal(t, "a1", order.OwnerUID)
}

func TestOrderServiceCreateInvalidStatus(t *testing.T) {
	_, _, svc := newOrderTestEnv()

	_, err := svc.Create(context.Background(), "a1", models.CreateOrderRequest{
		Title:  "Zlecenie",
		Trade:  "murarz",
		Status: "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderServiceAdminCreateWithToolsAndAssignment(t *testing.T) {
	orderRepo, _, svc := newOrderTestEnv()

	id, err := svc.AdminCreate(context.Background(), "a1", models.AdminCreateOrderRequest{
		CreateOrderRequest: models.CreateOrderRequest{Title: "Instalacja", Trade: "elektryk"},
		Tools:              models.StringList{"miernik", "wkrętarka"},
		AssignedTo:         strPtr("w2"),
	})
	require.NoError(t, err)

	order := orderRepo.orders[id]
	assert.Equal(t, []string{"miernik", "wkrętarka"}, []string(order.Tools))
	require.NotNil(t, order.AssignedTo)
	assert.Equal(t, "w2", *order.AssignedTo)
}

func TestOrderServiceGetByIDNotFound(t *testing.T) {
	_, _, svc := newOrderTestEnv()

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderServiceWorkerClaim(t *testing.T) {
	worker := &models.User{UID: "w1", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, _, svc := newOrderTestEnv(worker)
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "w1", "o1", models.AssignOrderRequest{})
	require.NoError(t, err)

	order := orderRepo.orders["o1"]
	require.NotNil(t, order.AssignedTo)
	assert.Equal(t, "w1", *order.AssignedTo)
	assert.Equal(t, models.StatusAssigned, order.Status)
}

func TestOrderServiceWorkerClaimTradeMismatch(t *testing.T) {
	worker := &models.User{UID: "w1", Role: models.RoleWorker, Trade: "elektryk"}
	orderRepo, _, svc := newOrderTestEnv(worker)
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "w1", "o1", models.AssignOrderRequest{})
	assert.ErrorIs(t, err, ErrTradeMismatch)

	// Denial leaves the order untouched.
	assert.Nil(t, orderRepo.orders["o1"].AssignedTo)
	assert.Equal(t, models.StatusOpen, orderRepo.orders["o1"].Status)
}

func TestOrderServiceWorkerClaimAlreadyAssigned(t *testing.T) {
	worker := &models.User{UID: "w2", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, _, svc := newOrderTestEnv(worker)
	orderRepo.orders["o1"] = &models.Order{
		ID: "o1", Trade: "murarz", Status: models.StatusAssigned, AssignedTo: strPtr("w1"),
	}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "w2", "o1", models.AssignOrderRequest{})
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Equal(t, "w1", *orderRepo.orders["o1"].AssignedTo)
}

func TestOrderServiceAdminAssignAnyTrade(t *testing.T) {
	admin := &models.User{UID: "a1", Role: models.RoleAdmin}
	orderRepo, _, svc := newOrderTestEnv(admin)
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "a1", "o1", models.AssignOrderRequest{WorkerUID: "w9"})
	require.NoError(t, err)
	assert.Equal(t, "w9", *orderRepo.orders["o1"].AssignedTo)
}

func TestOrderServiceAdminAssignMissingWorkerUID(t *testing.T) {
	admin := &models.User{UID: "a1", Role: models.RoleAdmin}
	orderRepo, _, svc := newOrderTestEnv(admin)
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "a1", "o1", models.AssignOrderRequest{})
	assert.ErrorIs(t, err, ErrMissingWorkerUID)
	assert.Nil(t, orderRepo.orders["o1"].AssignedTo)
}

func TestOrderServiceAssignOrderNotFound(t *testing.T) {
	admin := &models.User{UID: "a1", Role: models.RoleAdmin}
	_, _, svc := newOrderTestEnv(admin)

	err := svc.Assign(context.Background(), "a1", "ghost", models.AssignOrderRequest{WorkerUID: "w1"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderServiceAssignUnknownCallerDefaultsToWorker(t *testing.T) {
	// No profile at all resolves to a worker without a trade, so the claim
	// is rejected on the trade check.
	orderRepo, _, svc := newOrderTestEnv()
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = append(orderRepo.seq, "o1")

	err := svc.Assign(context.Background(), "ghost", "o1", models.AssignOrderRequest{})
	assert.ErrorIs(t, err, ErrTradeMismatch)
}

func TestOrderServiceListFilters(t *testing.T) {
	orderRepo, _, svc := newOrderTestEnv()
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.orders["o2"] = &models.Order{ID: "o2", Trade: "elektryk", Status: models.StatusOpen}
	orderRepo.orders["o3"] = &models.Order{ID: "o3", Trade: "murarz", Status: models.StatusClosed}
	orderRepo.seq = []string{"o1", "o2", "o3"}

	all, err := svc.List(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "o3", all[0].ID)

	murarz, err := svc.List(context.Background(), models.OrderFilter{Trade: "murarz"})
	require.NoError(t, err)
	assert.Len(t, murarz, 2)

	openMurarz, err := svc.List(context.Background(), models.OrderFilter{Trade: "murarz", Status: models.StatusOpen})
	require.NoError(t, err)
	require.Len(t, openMurarz, 1)
	assert.Equal(t, "o1", openMurarz[0].ID)
}

func TestOrderServiceAvailableOrders(t *testing.T) {
	orderRepo, reportRepo, svc := newOrderTestEnv()
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.orders["o2"] = &models.Order{
		ID: "o2", Trade: "murarz", Status: models.StatusAssigned, AssignedTo: strPtr("w1"),
	}
	orderRepo.seq = []string{"o1", "o2"}
	_, err := reportRepo.Add(context.Background(), "o1", &models.Report{Text: "wstępne oględziny"})
	require.NoError(t, err)

	views, err := svc.AvailableOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "o1", views[0].ID)
	assert.True(t, views[0].HasReports)
}

func TestOrderServiceCurrentOrdersJoins(t *testing.T) {
	worker := &models.User{UID: "w1", DisplayName: "Jan", Email: "jan@example.com", Trade: "murarz", Role: models.RoleWorker}
	orderRepo, _, svc := newOrderTestEnv(worker)
	orderRepo.orders["o1"] = &models.Order{
		ID: "o1", Trade: "murarz", Status: models.StatusAssigned, AssignedTo: strPtr("w1"),
	}
	orderRepo.orders["o2"] = &models.Order{
		ID: "o2", Trade: "murarz", Status: models.StatusAssigned, AssignedTo: strPtr("gone"),
	}
	orderRepo.orders["o3"] = &models.Order{ID: "o3", Trade: "elektryk", Status: models.StatusOpen}
	orderRepo.seq = []string{"o1", "o2", "o3"}

	views, err := svc.CurrentOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := make(map[string]*models.AdminOrderView)
	for _, v := range views {
		byID[v.ID] = v
	}

	require.NotNil(t, byID["o1"].AssignedUser)
	assert.Equal(t, "Jan", byID["o1"].AssignedUser.DisplayName)

	// Missing worker profile degrades to the bare UID.
	require.NotNil(t, byID["o2"].AssignedUser)
	assert.Equal(t, "gone", byID["o2"].AssignedUser.UID)
	assert.Empty(t, byID["o2"].AssignedUser.DisplayName)

	assert.Nil(t, byID["o3"].AssignedUser)
}

func TestOrderServiceHasReportsProbeFailure(t *testing.T) {
	orderRepo, reportRepo, svc := newOrderTestEnv()
	orderRepo.orders["o1"] = &models.Order{ID: "o1", Trade: "murarz", Status: models.StatusOpen}
	orderRepo.seq = []string{"o1"}
	reportRepo.hasAnyErr = errors.New("subcollection query failed")

	views, err := svc.AvailableOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].HasReports)
}
