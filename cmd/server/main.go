package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/internal/router"
	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/config"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting Antieq Wisma Bill...")

	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
		if err := database.CloseBalanceCache(); err != nil {
			appLogger.Error("Failed to close Redis:", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedData(); err != nil {
		appLogger.Fatalf("Failed to initialize seed data: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	if err := database.GetBalanceCache().Ping(); err != nil {
		// the cache is optional; everything recomputes from postgres
		appLogger.Warnf("Redis unavailable, balance summaries will not be cached: %v", err)
	}

	balanceService := services.NewBalanceService(database.GetDB(), database.GetBalanceCache())
	balanceScheduler := services.NewBalanceScheduler(balanceService)
	if err := balanceScheduler.Start(); err != nil {
		appLogger.Errorf("Failed to start balance scheduler: %v", err)
	}
	defer balanceScheduler.Stop()

	r := router.SetupRouter(balanceService)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
