package core

import (
	"context"
	"fmt"

	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/models"
)

// In-memory fakes for the repository and identity interfaces.

type fakeUserRepo struct {
	users  map[string]*models.User
	getErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.UID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", uid, db.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) Set(ctx context.Context, uid string, user *models.User) error {
	clone := *user
	clone.UID = uid
	f.users[uid] = &clone
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
	seq    []string // insertion order, oldest first
	nextID int
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
		repo.seq = append(repo.seq, o.ID)
	}
	return repo
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (string, error) {
	f.nextID++
	id := fmt.Sprintf("order-%d", f.nextID)
	clone := *order
	clone.ID = id
	f.orders[id] = &clone
	f.seq = append(f.seq, id)
	return id, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order '%s': %w", orderID, db.ErrNotFound)
	}
	clone := *order
	return &clone, nil
}

// List returns newest first, mirroring the created_at descending ordering of
// the real repository.
func (f *fakeOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	var out []*models.Order
	for i := len(f.seq) - 1; i >= 0; i-- {
		order := f.orders[f.seq[i]]
		if filter.Trade != "" && order.Trade != filter.Trade {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		clone := *order
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAvailable(ctx context.Context) ([]*models.Order, error) {
	var out []*models.Order
	for i := len(f.seq) - 1; i >= 0; i-- {
		order := f.orders[f.seq[i]]
		if order.Status != models.StatusOpen || order.AssignedTo != nil {
			continue
		}
		clone := *order
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeOrderRepo) Claim(ctx context.Context, orderID, workerUID string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order '%s': %w", orderID, db.ErrNotFound)
	}
	if order.AssignedTo != nil {
		return fmt.Errorf("order '%s': %w", orderID, db.ErrAlreadyAssigned)
	}
	order.AssignedTo = &workerUID
	order.Status = models.StatusAssigned
	return nil
}

func (f *fakeOrderRepo) Assign(ctx context.Context, orderID, workerUID string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order '%s': %w", orderID, db.ErrNotFound)
	}
	order.AssignedTo = &workerUID
	order.Status = models.StatusAssigned
	return nil
}

type fakeReportRepo struct {
	reports   map[string][]*models.Report
	hasAnyErr error
	nextID    int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string][]*models.Report)}
}

func (f *fakeReportRepo) Add(ctx context.Context, orderID string, report *models.Report) (string, error) {
	f.nextID++
	id := fmt.Sprintf("report-%d", f.nextID)
	clone := *report
	clone.ID = id
	f.reports[orderID] = append(f.reports[orderID], &clone)
	return id, nil
}

func (f *fakeReportRepo) ListByOrder(ctx context.Context, orderID string) ([]*models.Report, error) {
	stored := f.reports[orderID]
	out := make([]*models.Report, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		clone := *stored[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeReportRepo) HasAny(ctx context.Context, orderID string) (bool, error) {
	if f.hasAnyErr != nil {
		return false, f.hasAnyErr
	}
	return len(f.reports[orderID]) > 0, nil
}

type fakeIdentity struct {
	accounts  map[string]string // email -> uid
	claims    map[string]string // uid -> role
	createErr error
	claimErr  error
	nextUID   int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		accounts: make(map[string]string),
		claims:   make(map[string]string),
	}
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextUID++
	uid := fmt.Sprintf("uid-%d", f.nextUID)
	f.accounts[email] = uid
	return uid, nil
}

func (f *fakeIdentity) SetRoleClaim(ctx context.Context, uid, role string) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claims[uid] = role
	return nil
}

func (f *fakeIdentity) LookupByEmail(ctx context.Context, email string) (string, error) {
	uid, ok := f.accounts[email]
	if !ok {
		return "", fmt.Errorf("no account for '%s'", email)
	}
	return uid, nil
}

func strPtr(s string) *string { return &s }
