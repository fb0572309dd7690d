package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/app"
	"github.com/LavaJover/shvark-payment-service/internal/app/setup"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/router"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/tracing"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "payment-service"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the payment HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logging.Warn("failed to flush traces", zap.Error(err))
			}
		}()
	}

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		return err
	}
	paymentHandler, healthHandler := setup.InitializeHandlers(deps, useCases)

	engine := router.New(router.Handlers{
		Payment: paymentHandler,
		Health:  healthHandler,
	}, deps.Registry)

	server := router.NewServer(
		cfg.HTTPServer.Addr(),
		engine,
		cfg.HTTPServer.ReadTimeout,
		cfg.HTTPServer.WriteTimeout,
	)

	logging.Info("payment service starting", zap.String("env", cfg.Env))
	if err := app.NewApp(server).Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logging.Info("payment service stopped")
	return nil
}
