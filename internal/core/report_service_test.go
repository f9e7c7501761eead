package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zlecenia-backend-go/internal/models"
)

func newReportTestEnv(users ...*models.User) (*fakeOrderRepo, *fakeReportRepo, ReportService) {
	userRepo := newFakeUserRepo(users...)
	orderRepo := newFakeOrderRepo()
	reportRepo := newFakeReportRepo()
	userSvc := NewUserService(userRepo, newFakeIdentity(), zap.NewNop())
	return orderRepo, reportRepo, NewReportService(orderRepo, reportRepo, userSvc)
}

func seedAssignedOrder(orderRepo *fakeOrderRepo, workerUID string) {
	orderRepo.orders["o1"] = &models.Order{
		ID: "o1", Trade: "murarz", Status: models.StatusAssigned, AssignedTo: strPtr(workerUID),
	}
	orderRepo.seq = append(orderRepo.seq, "o1")
}

func TestReportServiceAppendByAssignedWorker(t *testing.T) {
	worker := &models.User{UID: "w1", DisplayName: "Jan Kowalski", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, reportRepo, svc := newReportTestEnv(worker)
	seedAssignedOrder(orderRepo, "w1")

	id, err := svc.Append(context.Background(), "w1", "token-name", "o1", "Zalano fundamenty")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := reportRepo.reports["o1"]
	require.Len(t, stored, 1)
	assert.Equal(t, "w1", stored[0].AuthorUID)
	// Profile display name wins over the token name.
	assert.Equal(t, "Jan Kowalski", stored[0].AuthorName)
}

func TestReportServiceAppendByAdmin(t *testing.T) {
	admin := &models.User{UID: "a1", Role: models.RoleAdmin}
	orderRepo, reportRepo, svc := newReportTestEnv(admin)
	seedAssignedOrder(orderRepo, "w1")

	_, err := svc.Append(context.Background(), "a1", "Admin", "o1", "Kontrola jakości")
	require.NoError(t, err)
	assert.Len(t, reportRepo.reports["o1"], 1)
}

func TestReportServiceAppendForbidden(t *testing.T) {
	other := &models.User{UID: "w2", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, reportRepo, svc := newReportTestEnv(other)
	seedAssignedOrder(orderRepo, "w1")

	_, err := svc.Append(context.Background(), "w2", "Inny", "o1", "Nieuprawniony wpis")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, reportRepo.reports["o1"])
}

func TestReportServiceAppendEmptyText(t *testing.T) {
	worker := &models.User{UID: "w1", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, reportRepo, svc := newReportTestEnv(worker)
	seedAssignedOrder(orderRepo, "w1")

	_, err := svc.Append(context.Background(), "w1", "Jan", "o1", "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyReportText)
	assert.Empty(t, reportRepo.reports["o1"])
}

func TestReportServiceAppendAuthorNameFallback(t *testing.T) {
	// Profile exists but carries no display name.
	worker := &models.User{UID: "w1", Role: models.RoleWorker, Trade: "murarz"}
	orderRepo, reportRepo, svc := newReportTestEnv(worker)
	seedAssignedOrder(orderRepo, "w1")

	_, err := svc.Append(context.Background(), "w1", "Jan z tokena", "o1", "Postęp prac")
	require.NoError(t, err)
	assert.Equal(t, "Jan z tokena", reportRepo.reports["o1"][0].AuthorName)
}

func TestReportServiceAppendOrderNotFound(t *testing.T) {
	worker := &models.User{UID: "w1", Role: models.RoleWorker, Trade: "murarz"}
	_, _, svc := newReportTestEnv(worker)

	_, err := svc.Append(context.Background(), "w1", "Jan", "ghost", "tekst")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReportServiceListByOrder(t *testing.T) {
	admin := &models.User{UID: "a1", Role: models.RoleAdmin}
	orderRepo, _, svc := newReportTestEnv(admin)
	seedAssignedOrder(orderRepo, "w1")

	_, err := svc.Append(context.Background(), "a1", "Admin", "o1", "pierwszy")
	require.NoError(t, err)
	_, err = svc.Append(context.Background(), "a1", "Admin", "o1", "drugi")
	require.NoError(t, err)

	reports, err := svc.ListByOrder(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	// Newest first.
	assert.Equal(t, "drugi", reports[0].Text)

	_, err = svc.ListByOrder(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
