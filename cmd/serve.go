package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resep/internal/app"
	"resep/internal/config"
	"resep/internal/database"
	"resep/internal/notifications"
	"resep/internal/services"
	"resep/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	notificationsQueue = "resep.notifications"
	shutdownTimeout    = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	var accessLog bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return serve(cmd.Context(), cfg, logger, accessLog)
		},
	}
	cmd.Flags().BoolVar(&accessLog, "access-log", true, "log every HTTP request")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger, accessLog bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBDebug)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange}, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		publisher = mqClient

		handler := notifications.NewHandler(notifications.NewLogNotifier(logger), logger)
		if err := mqClient.Consume(ctx, notificationsQueue, "#", handler.Delivery(ctx)); err != nil {
			return err
		}
	} else {
		logger.Info("RABBITMQ_URL not set, events are disabled")
	}

	svc := app.NewServices(cfg, db, publisher, logger)
	server := app.New(svc, app.Options{
		APIPrefix:     cfg.APIPrefix,
		AccessLog:     accessLog,
		EventsEnabled: publisher != nil,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.AppPort))
		errCh <- server.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
	return nil
}
