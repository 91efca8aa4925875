// Package server initializes and runs the reference tribute store. It opens
// the SQLite database, applies migrations, mounts the HTTP endpoint and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/server/config"
	"github.com/dmuchiri/tributewall/internal/server/db"
	"github.com/dmuchiri/tributewall/internal/server/httpapi"
	"github.com/dmuchiri/tributewall/internal/server/repositories/tributes"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *httpapi.Handler
	closeDB func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	repo := tributes.NewSQLiteRepository(conn)
	handler := httpapi.NewHandler(repo, logger)

	return &App{config: c, logger: logger, handler: handler, closeDB: conn.Close}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	app.handler.Register(mux)

	srv := &http.Server{Addr: app.config.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting tribute store...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
