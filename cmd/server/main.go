package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"zlecenia-backend-go/internal/api"
	"zlecenia-backend-go/internal/auth"
	"zlecenia-backend-go/internal/config"
	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/middleware"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.NewClients(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	// The verifier keeps refreshing Google's signing keys for the process
	// lifetime, so it gets a background context rather than the init one.
	verifier, err := auth.NewVerifier(context.Background(), appConfig.FirebaseProjectID)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize token verifier", zap.Error(err))
	}
	zapLogger.Info("Token verifier initialized", zap.String("projectID", appConfig.FirebaseProjectID))

	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	orderRepo := db.NewFirestoreOrderRepository(clients.Firestore)
	reportRepo := db.NewFirestoreReportRepository(clients.Firestore)
	identity := auth.NewIdentityAdmin(clients.Auth)
	zapLogger.Info("Repositories initialized successfully.")

	userService := core.NewUserService(userRepo, identity, zapLogger)
	orderService := core.NewOrderService(orderRepo, reportRepo, userService, zapLogger)
	reportService := core.NewReportService(orderRepo, reportRepo, userService)
	zapLogger.Info("Core services initialized successfully.")

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	api.SetupRoutes(router, appConfig, zapLogger, verifier, userService, orderService, reportService)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
