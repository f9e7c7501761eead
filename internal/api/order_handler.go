package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/models"
)

// OrderHandler handles the public and worker-facing order endpoints.
type OrderHandler struct {
	orderService core.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os core.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// List handles GET /orders. Listing is public and filterable by trade and
// status query parameters.
func (h *OrderHandler) List(c *gin.Context) {
	filter := models.OrderFilter{
		Trade:  c.Query("trade"),
		Status: c.Query("status"),
	}

	orders, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id. Reading a single order is public.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Create handles POST /orders. Any authenticated caller may create an order
// and becomes its owner.
func (h *OrderHandler) Create(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title and trade are required", Details: err.Error()})
		return
	}

	id, err := h.orderService.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Message: "Order created", ID: id})
}

// Assign handles POST /orders/:id/assign. Workers claim the order for
// themselves; admins pass worker_uid to assign anyone.
func (h *OrderHandler) Assign(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}

	// The body is optional for the worker self-claim path.
	var req models.AssignOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Details: err.Error()})
			return
		}
	}

	if err := h.orderService.Assign(c.Request.Context(), uid, c.Param("id"), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Order assigned"})
}
