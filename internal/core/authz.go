package core

import "zlecenia-backend-go/internal/models"

// Authorization guard: state-free decision helpers evaluated per endpoint.
// Roles are always resolved fresh from the profile store by the caller;
// these functions never look at token claims.

// canClaim decides whether a worker may claim an order for themselves.
// The trade must match and the order must still be unassigned. The repository
// re-checks the assignment inside a transaction; this pre-check exists so a
// mismatched trade is rejected before any write is attempted.
func canClaim(worker *models.User, order *models.Order) error {
	if worker == nil || worker.Trade == "" || worker.Trade != order.Trade {
		return ErrTradeMismatch
	}
	if order.AssignedTo != nil {
		return ErrAlreadyAssigned
	}
	return nil
}

// canReport decides whether the caller may append a report to the order:
// admins always, otherwise only the currently assigned worker.
func canReport(role, callerUID string, order *models.Order) bool {
	if role == models.RoleAdmin {
		return true
	}
	return order.AssignedTo != nil && *order.AssignedTo == callerUID
}
