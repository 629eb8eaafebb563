package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/taskflow/internal/api"
	"github.com/terraincognita07/taskflow/internal/config"
	"github.com/terraincognita07/taskflow/internal/db"
	"github.com/terraincognita07/taskflow/internal/realtime"
	"gorm.io/gorm"
)

func serveCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	if cfg.UsesDefaultSecret() {
		log.Printf("SECRET_KEY uses the built-in placeholder; set a real secret before exposing the server")
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	app, err := newServer(cfg, database)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("TaskFlow listening on http://0.0.0.0:%s (db: %s, pusher: %t)", cfg.Port, cfg.DBPath, cfg.Pusher.Enabled())
	return app.Listen(":" + cfg.Port)
}

// newServer wires the realtime fan-out and the API onto a fresh fiber app.
func newServer(cfg *config.Config, database *gorm.DB) (*fiber.App, error) {
	hub := realtime.NewHub()
	publishers := []realtime.Publisher{hub}
	if cfg.Pusher.Enabled() {
		publishers = append(publishers, realtime.NewPusherPublisher(cfg.Pusher.AppID, cfg.Pusher.Key, cfg.Pusher.Secret, cfg.Pusher.Cluster))
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.CookieSecure, hub, realtime.NewNotifier(publishers...))
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "TaskFlow",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}
