package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inspection-backend/config"
	v1 "go-inspection-backend/internal/delivery/http/v1"
	"go-inspection-backend/internal/domain"
	"go-inspection-backend/internal/usecase"
	"go-inspection-backend/pkg/email"
	"go-inspection-backend/pkg/logger"
	"go-inspection-backend/pkg/ratelimit"
	"go-inspection-backend/pkg/relay"
	"go-inspection-backend/pkg/validation"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting inspection backend", "port", cfg.Port, "delivery_mode", cfg.DeliveryMode().String())

	// 3. Setup Delivery Sink
	var sink domain.DeliveryRelay
	switch cfg.DeliveryMode() {
	case config.ModeHTTPRelay:
		sink = relay.NewHTTPRelay(cfg.ContactAPIURL, cfg.ContactSharedSecret)
	case config.ModeDirectMail:
		sink = email.NewService(cfg)
	default:
		logger.Log.Warn("No delivery sink configured - submissions will be accepted but not delivered")
		sink = relay.NewNoopRelay()
	}

	// 4. Setup Intake Pipeline
	contactValidator := validation.New()
	limiter := ratelimit.NewStore()
	contactUC := usecase.NewContactUsecase(contactValidator, limiter, sink)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
