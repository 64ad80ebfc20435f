package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/app"
	"delizzia_backoffice/internal/config"
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/router"
	"delizzia_backoffice/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger(utils.LoggerConfig{})
		utils.LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	// Initialize Logger
	utils.InitLogger(utils.LoggerConfig{Level: cfg.LogLevel, File: cfg.LogFile})

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		utils.LogError(err, "Failed to load business settings")
		os.Exit(1)
	}

	// Initialize Database
	if err := database.InitDB(cfg.SeedPath); err != nil {
		utils.LogError(err, "Failed to load seed data")
		os.Exit(1)
	}

	decimal.MarshalJSONWithoutQuotes = true

	svc, err := app.New(database.GetDB(), app.Options{
		Settings:                settings,
		Location:                cfg.Location,
		NodeID:                  cfg.NodeID,
		StrictStatusTransitions: cfg.StrictStatusTransitions,
	})
	if err != nil {
		utils.LogError(err, "Failed to initialize services")
		os.Exit(1)
	}
	if err := svc.Dashboard.Start(cfg.DashboardRefresh); err != nil {
		utils.LogError(err, "Failed to schedule dashboard refresh", map[string]interface{}{"spec": cfg.DashboardRefresh})
		os.Exit(1)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(svc, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":     cfg.Port,
			"timezone": cfg.Location.String(),
			"strict":   cfg.StrictStatusTransitions,
		})
		utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + cfg.Port + "/api/v1"})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	utils.LogInfo("Shutting down", map[string]interface{}{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "Server forced to shut down")
	}
	if err := svc.Close(); err != nil {
		utils.LogError(err, "Failed to stop background services")
	}
	utils.LogInfo("Server stopped")
}
