// Package server initializes and runs the content API server.
// It connects storage, applies migrations, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freelancework02/welfare-admin/internal/logging"
	"github.com/freelancework02/welfare-admin/internal/server/api"
	"github.com/freelancework02/welfare-admin/internal/server/config"
	"github.com/freelancework02/welfare-admin/internal/server/repositories/repomanager"
	"github.com/freelancework02/welfare-admin/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	router http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(rm.Conn(), rm, c)
	cs := services.NewContentService(rm.Conn(), rm)
	ms := services.NewMediaService(c)

	if err := us.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("admin bootstrap error: %w", err)
	}

	router := api.NewRouter(api.NewHandler(logger, us, cs, ms, []byte(c.SecretKey)))

	return &App{config: c, logger: logger, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	app.logger.Info(shutdownCtx, "server stopped")
}
