package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task-manager/internal/client"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/ui"
	"task-manager/internal/workerpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	if err := logging.Init(logging.Options{
		SystemName: "task-manager-ui",
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	}); err != nil {
		logging.Logger.Fatalf("Event ID: LOGGER_INIT_FAILED, Description: %v", err)
	}

	api := client.New(client.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.ClientTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	})

	pool := workerpool.New(cfg.UIQueueSize, func(err error) {
		logging.Logger.Errorf("Event ID: UI_TOGGLE_FAILED, Description: Error toggling task complete: %v", err)
	})
	pool.Start(cfg.UIWorkers)

	app := ui.New(api, pool)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.ClientTimeout)
	app.Load(loadCtx)
	cancelLoad()

	server := &http.Server{
		Addr:    cfg.UIAddr,
		Handler: ui.NewRouter(app),
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: UI running on %s, store at %s", cfg.UIAddr, cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	<-stop
	logging.Logger.Info("Event ID: SERVICE_STOP, Description: shut down signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SHUTDOWN_FAILED, Description: server shutdown failed: %v", err)
	}
	if err := pool.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SHUTDOWN_FAILED, Description: pending toggles dropped: %v", err)
	}

	logging.Logger.Info("Event ID: SERVICE_STOPPED, Description: shut down gracefully")
}
