package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/models"
)

// AdminHandler handles the admin-only endpoints. The admin role gate runs in
// middleware; handlers here assume an admin caller.
type AdminHandler struct {
	orderService  core.OrderService
	reportService core.ReportService
	userService   core.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(os core.OrderService, rs core.ReportService, us core.UserService) *AdminHandler {
	return &AdminHandler{
		orderService:  os,
		reportService: rs,
		userService:   us,
	}
}

// AvailableOrders handles GET /admin/orders/available: open, unassigned
// orders with the hasReports annotation.
func (h *AdminHandler) AvailableOrders(c *gin.Context) {
	views, err := h.orderService.AvailableOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if views == nil {
		views = []*models.AdminOrderView{}
	}
	c.JSON(http.StatusOK, views)
}

// CurrentOrders handles GET /admin/orders/current: every order joined with
// the assigned worker's profile and the hasReports annotation.
func (h *AdminHandler) CurrentOrders(c *gin.Context) {
	views, err := h.orderService.CurrentOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if views == nil {
		views = []*models.AdminOrderView{}
	}
	c.JSON(http.StatusOK, views)
}

// CreateOrder handles POST /admin/orders, which additionally accepts a tools
// list (array or comma-separated string) and an explicit assignedTo.
func (h *AdminHandler) CreateOrder(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}

	var req models.AdminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title and trade are required", Details: err.Error()})
		return
	}

	id, err := h.orderService.AdminCreate(c.Request.Context(), uid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Message: "Order created", ID: id})
}

// CreateUser handles POST /admin/users: provisions a Firebase Auth account,
// sets the role claim and writes the profile document.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required", Details: err.Error()})
		return
	}

	uid, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidRole) {
			respondServiceError(c, err)
			return
		}
		// Account creation failures (duplicate email, weak password) surface
		// as 400 so the admin UI can show them.
		log.Printf("CreateUser: provisioning failed: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to create user", Details: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, CreatedUserResponse{Message: "User created", UID: uid})
}

// OrderReports handles GET /admin/orders/:id/reports.
func (h *AdminHandler) OrderReports(c *gin.Context) {
	reports, err := h.reportService.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	c.JSON(http.StatusOK, reports)
}
