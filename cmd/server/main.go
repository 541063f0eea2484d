package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/config"
	"github.com/gdugdh24/matchdotcom-backend/internal/infrastructure/container"
	"github.com/gdugdh24/matchdotcom-backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.Logging)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize dependency injection container
	app, err := container.NewContainer(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.WithError(err).Error("error closing application")
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Server.Start(); err != nil {
			log.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
		os.Exit(1)
	}

	log.Info("server exited properly")
}
