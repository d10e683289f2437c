// Package server initializes and runs the Falimatik server. It selects the
// storage backend, wires the auth components, starts the HTTP and gRPC
// endpoints and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/burakkoc5/falimatik/internal/server/config"
	"github.com/burakkoc5/falimatik/internal/server/credentials"
	"github.com/burakkoc5/falimatik/internal/server/httpapi"
	"github.com/burakkoc5/falimatik/internal/server/mailer"
	"github.com/burakkoc5/falimatik/internal/server/repositories/repomanager"
	"github.com/burakkoc5/falimatik/internal/server/services"
	"github.com/burakkoc5/falimatik/internal/server/verification"

	gs "github.com/burakkoc5/falimatik/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	dispatcher *mailer.Dispatcher
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	repos, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	store := credentials.NewStore(repos, c.PasswordHashCost)
	tokens := verification.NewManager(store)
	sessions := auth.NewSessions(c.SecretKey, c.SessionTokenTTL)
	guard := auth.NewGuard(sessions)
	dispatcher := mailer.NewDispatcher(mailer.NewSender(c.SMTP(), logger), logger)

	authService := services.NewAuthService(store, tokens, sessions, dispatcher, c.BaseURL, logger)
	userService := services.NewUserService(store, logger)
	numbersService := services.NewNumbersService(store, logger)

	api := httpapi.NewAPI(authService, userService, numbersService, guard, logger)

	return &App{
		config:     c,
		logger:     logger,
		repos:      repos,
		dispatcher: dispatcher,
		httpServer: httpapi.NewServer(c.HTTPAddr, api.Routes(), logger, c.ShutdownTimeout),
		grpcServer: gs.NewGRPCServer(c.GRPCAddr, logger, guard, numbersService),
	}, nil
}

// newRepositoryManager opens Postgres and applies migrations when a DSN is
// configured, and falls back to the in-memory repository otherwise.
func newRepositoryManager(ctx context.Context, c *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		l.Warn(ctx, "no database DSN configured, using in-memory storage")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return m, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or either server fails, then
// waits for pending verification emails and closes the storage.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.dispatcher.Wait(shutdownCtx); err != nil {
		app.logger.Warn(ctx, "pending emails not delivered", "error", err)
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
