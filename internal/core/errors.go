package core

import "errors"

// Sentinel errors returned by the services. The api layer maps them to HTTP
// status codes in one place.
var (
	// ErrOrderNotFound is returned when a referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUserNotFound is returned when a referenced user profile does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when the caller is authenticated but lacks the
	// role, ownership, or assignment the operation requires.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrTradeMismatch is returned when a worker tries to claim an order
	// outside their trade.
	ErrTradeMismatch = errors.New("trade does not match order")
	// ErrAlreadyAssigned is returned when a worker tries to claim an order
	// that was assigned in the meantime.
	ErrAlreadyAssigned = errors.New("order already assigned")
	// ErrMissingWorkerUID is returned when an admin assignment omits worker_uid.
	ErrMissingWorkerUID = errors.New("worker_uid is required")
	// ErrEmptyReportText is returned for empty or whitespace-only report text.
	ErrEmptyReportText = errors.New("report text cannot be empty")
	// ErrInvalidStatus is returned for an unknown order status value.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidRole is returned for an unknown role value.
	ErrInvalidRole = errors.New("invalid role")
)
