// Package server wires the TaskMaster HTTP API together: it opens the
// database, applies migrations, builds the services and runs the HTTP
// server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskmaster/internal/logging"
	"github.com/dmitrijs2005/taskmaster/internal/server/auth"
	"github.com/dmitrijs2005/taskmaster/internal/server/config"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskmaster/internal/server/rest"
	"github.com/dmitrijs2005/taskmaster/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.HTTPServer
}

// NewApp opens storage and builds the HTTP server described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if c.SecretKey == "" {
		return nil, fmt.Errorf("config error: secret key is empty")
	}

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := repomanager.NewSQLRepositoryManager(c.DatabaseDriver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	hasher := auth.NewPasswordHasher(auth.DefaultArgon2Params)
	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	us, err := services.NewUserService(db, m, hasher, codec, logger.With("module", "users"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	ts := services.NewTaskService(db, m, c.MaxPageSize)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: rest.NewHTTPServer(c, logger, us, ts),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server error", "error", err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
