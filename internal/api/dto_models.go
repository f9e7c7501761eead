package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details, if available
}

// CreatedResponse acknowledges a creation with the new document ID.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// CreatedUserResponse acknowledges account provisioning with the new UID.
type CreatedUserResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// MessageResponse is a generic structure for simple success messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// MeResponse is the token-claims fallback for GET /me when the caller has no
// profile document yet. Role defaults to worker: least privilege.
type MeResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}
