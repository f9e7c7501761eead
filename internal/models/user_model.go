package models

import "time"

// Role values stored in the users collection. A missing profile document is
// treated as RoleWorker so that a valid credential without a provisioned
// profile never gains elevated access.
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleWorker
}

// User represents a user profile stored in the `users` collection.
// The document ID is the Firebase Auth UID.
type User struct {
	UID         string    `json:"uid" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName"`
	Role        string    `json:"role" firestore:"role"`
	Trade       string    `json:"trade,omitempty" firestore:"trade"`
	CreatedAt   time.Time `json:"created_at,omitempty" firestore:"created_at,serverTimestamp"`
}
