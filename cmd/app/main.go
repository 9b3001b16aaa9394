package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/pkg/logging"
	"fulfillment/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

const (
	serviceName     = "fulfillment"
	shutdownTimeout = 15 * time.Second
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:         configs.LogLevel,
		Encoding:      configs.LogEncoding,
		IsDevelopment: configs.LogDevelopment,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Exporter:       configs.TracingExporter,
		OTLPEndpoint:   configs.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return fmt.Errorf("compose application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to release resources", zap.Error(err))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	if err = startWebServer(ctx, app, configs.HTTPPort, logger); err != nil {
		return err
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdownTracing(flushCtx)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *zap.Logger) error {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return fmt.Errorf("load openapi document: %w", err)
	}
	server := httpin.NewServer(app.CreateHTTPHandlers(), app.EventSubscriber(), logging.Component(logger, "http"))
	e, err := httpin.NewRouter(server, doc)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	e.Logger.SetLevel(log.WARN)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when the process is signalled.
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
