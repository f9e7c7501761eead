package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zlecenia-backend-go/internal/config"
	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) is applied to the
// router in main before this is called.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	verifier middleware.TokenVerifier,
	userService core.UserService,
	orderService core.OrderService,
	reportService core.ReportService,
) {
	authMW := middleware.NewAuthMiddleware(verifier, userService)

	userHandler := NewUserHandler(userService)
	orderHandler := NewOrderHandler(orderService)
	reportHandler := NewReportHandler(reportService)
	adminHandler := NewAdminHandler(orderService, reportService, userService)
	debugHandler := NewDebugHandler(appConfig, verifier)

	// Profile of the authenticated caller.
	router.GET("/me", authMW.VerifyToken(), userHandler.Me)

	// Orders. Listing and reading are public; everything mutating requires
	// authentication, with per-endpoint authorization in the services.
	orders := router.Group("/orders")
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("", authMW.VerifyToken(), orderHandler.Create)
		orders.POST("/:id/assign", authMW.VerifyToken(), orderHandler.Assign)
		orders.POST("/:id/report", authMW.VerifyToken(), reportHandler.Create)
	}

	// Admin surface: role is resolved fresh from the profile store per
	// request, never trusted from token claims.
	admin := router.Group("/admin", authMW.VerifyToken(), authMW.RequireAdmin())
	{
		admin.GET("/orders/available", adminHandler.AvailableOrders)
		admin.GET("/orders/current", adminHandler.CurrentOrders)
		admin.POST("/orders", adminHandler.CreateOrder)
		admin.GET("/orders/:id/reports", adminHandler.OrderReports)
		admin.POST("/users", adminHandler.CreateUser)
	}

	// Diagnostics for token/project misconfiguration hunts.
	debug := router.Group("/_debug")
	{
		debug.GET("/sa_project", debugHandler.SAProject)
		debug.POST("/verify_token", debugHandler.VerifyToken)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured successfully.")
}
