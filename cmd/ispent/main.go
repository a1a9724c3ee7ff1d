package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/srishti24jais/ispent-expense-tracker/internal/amqp"
	"github.com/srishti24jais/ispent-expense-tracker/internal/backend"
	"github.com/srishti24jais/ispent-expense-tracker/internal/cli"
	apphttp "github.com/srishti24jais/ispent-expense-tracker/internal/http"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
	"github.com/srishti24jais/ispent-expense-tracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := backend.Open(ctx, backend.Config{
		Kind:            backend.Kind(cfg.DataBackend),
		SQLiteDBPath:    cfg.SQLiteDBPath,
		DurableRequired: cfg.DurableRequired,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to open storage backend", applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// Expense events are optional: an empty AMQP URL runs the app
	// without a broker.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("AMQP publisher initialized",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled, expense events will not be published")
	}

	service := services.NewExpenseService(result.Store, publisher)

	srv := apphttp.NewServer(":"+cfg.Port, service, logger, apphttp.Options{
		CacheTTL:          cfg.CacheTTL,
		CacheMaxSize:      cfg.CacheMaxSize,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting ispent server",
			"port", cfg.Port, applog.FieldBackend, result.Kind.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
