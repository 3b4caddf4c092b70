package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"task-manager/internal/config"
	router "task-manager/internal/http"
	"task-manager/internal/http/handlers"
	"task-manager/internal/logging"
	"task-manager/internal/service"
	"task-manager/internal/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	if err := logging.Init(logging.Options{
		SystemName: "task-store",
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	}); err != nil {
		logging.Logger.Fatalf("Event ID: LOGGER_INIT_FAILED, Description: %v", err)
	}

	store := memory.New()

	service, err := service.New(store)
	if err != nil {
		logging.Logger.Fatalf("Event ID: SERVICE_INIT_FAILED, Description: service initiation failed: %v", err)
	}

	handler := handlers.New(service)

	router := router.New(handler)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on %s", cfg.HTTPAddr)
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
		logging.Logger.Fatalf("Event ID: SHUTDOWN_FAILED, Description: shutdown failed: %v", err)
	}

	logging.Logger.Info("Event ID: SERVICE_STOPPED, Description: shut down gracefully")
}
