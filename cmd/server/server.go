package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// HTTP server timeouts
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// startHTTPServer serves handler until SIGINT/SIGTERM, then drains
// in-flight requests within the configured timeout and closes the database.
// It returns the process exit code.
func (app *application) startHTTPServer(ctx context.Context, handler http.Handler) int {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		ctx,
		app.config.Server.ShutdownTimeout(),
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				app.logger.Info("Shutting down server...")
				err := server.Shutdown(ctx)
				app.cleanup()
				return err
			},
		},
	)

	select {
	case code := <-wait:
		app.logger.Info("Server shutdown completed", slog.Int("exit_code", code))
		return code
	case err := <-serverErr:
		app.logger.Error("Server failed", slog.String("error", err.Error()))
		app.cleanup()
		return 1
	}
}
