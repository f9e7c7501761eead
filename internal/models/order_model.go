package models

import "time"

// Order status values. The convention is assignedTo != nil => StatusAssigned;
// Firestore does not enforce it.
const (
	StatusOpen     = "open"
	StatusAssigned = "assigned"
	StatusClosed   = "closed"
)

// ValidStatus reports whether status is one of the known order states.
func ValidStatus(status string) bool {
	return status == StatusOpen || status == StatusAssigned || status == StatusClosed
}

// Order represents a service job stored in the `orders` collection.
// AssignedTo is a pointer so an unassigned order is stored (and queried)
// as a Firestore null, matching what the clients expect.
type Order struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description"`
	Trade       string    `json:"trade" firestore:"trade"`
	Status      string    `json:"status" firestore:"status"`
	Price       *float64  `json:"price,omitempty" firestore:"price"`
	Location    string    `json:"location,omitempty" firestore:"location"`
	Tools       []string  `json:"tools,omitempty" firestore:"tools"`
	OwnerUID    string    `json:"ownerUid" firestore:"ownerUid"`
	AssignedTo  *string   `json:"assignedTo" firestore:"assignedTo"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at,serverTimestamp"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updated_at,serverTimestamp"`
}

// OrderFilter narrows order listings. Zero-value fields are ignored.
type OrderFilter struct {
	Trade  string
	Status string
}

// AssignedUser is the subset of a worker profile joined onto admin order
// views. Only the UID is guaranteed; the rest is empty when the profile
// document is missing.
type AssignedUser struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Trade       string `json:"trade,omitempty"`
}

// AdminOrderView is an order enriched for the admin listings with the
// assigned worker's profile and a cheap "has any reports" probe.
type AdminOrderView struct {
	Order
	AssignedUser *AssignedUser `json:"assignedUser"`
	HasReports   bool          `json:"hasReports"`
}
