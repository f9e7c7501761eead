package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList accepts either a JSON array or a single comma-separated string
// and normalizes both into a list of trimmed, non-empty strings. Admin
// clients historically sent tools both ways. Any other JSON shape decodes to
// an empty list rather than failing the whole request.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	*s = nil

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		for _, part := range strings.Split(single, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				*s = append(*s, trimmed)
			}
		}
		return nil
	}

	var items []interface{}
	if err := json.Unmarshal(data, &items); err == nil {
		for _, item := range items {
			if trimmed := strings.TrimSpace(fmt.Sprint(item)); trimmed != "" {
				*s = append(*s, trimmed)
			}
		}
	}
	return nil
}

// CreateOrderRequest is the body of POST /orders (self-serve creation).
type CreateOrderRequest struct {
	Title       string   `json:"title" binding:"required"`
	Trade       string   `json:"trade" binding:"required"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// AdminCreateOrderRequest is the body of POST /admin/orders. It additionally
// carries normalized tools and an optional explicit assignment.
type AdminCreateOrderRequest struct {
	CreateOrderRequest
	Tools      StringList `json:"tools,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
}

// AssignOrderRequest is the body of POST /orders/:id/assign. WorkerUID is
// required for the admin path and ignored for the worker self-claim path.
type AssignOrderRequest struct {
	WorkerUID string `json:"worker_uid,omitempty"`
}

// CreateReportRequest is the body of POST /orders/:id/report.
type CreateReportRequest struct {
	Text string `json:"text"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName,omitempty"`
	Trade       string `json:"trade,omitempty"`
	Role        string `json:"role,omitempty"`
}
