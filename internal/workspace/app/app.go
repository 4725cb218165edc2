package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/hivedesk/hivedesk/internal/workspace/http"
	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/internal/workspace/store/drivers/sqlite"
	"github.com/hivedesk/hivedesk/pkg/authx"
	"github.com/hivedesk/hivedesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the workspace service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	verifier authx.Verifier

	workspaceService  *service.WorkspaceService
	lifecycleService  *service.LifecycleService
	membershipService *service.MembershipService
	invitationService *service.InvitationService
	reaperService     *service.ReaperService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "workspace-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.verifier = &authx.HMACVerifier{
		Secret: []byte(cfg.AuthSecret),
		Issuer: cfg.AuthIssuer,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.reaperService.Start()

	app.logger.Info("workspace service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down workspace service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.reaperService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("workspace service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	activity := &service.LogActivityLog{Logger: app.logger}
	notifier := &service.LogNotifier{Logger: app.logger}
	email := &service.LogEmailSender{Logger: app.logger}

	app.workspaceService = &service.WorkspaceService{
		Store:             app.db,
		Activity:          activity,
		Notifier:          notifier,
		DefaultMaxMembers: app.cfg.DefaultMaxMembers,
	}
	app.lifecycleService = &service.LifecycleService{
		Store:       app.db,
		Activity:    activity,
		Notifier:    notifier,
		GraceWindow: app.cfg.ArchiveGraceWindow,
	}
	app.membershipService = &service.MembershipService{
		Store:    app.db,
		Activity: activity,
		Notifier: notifier,
	}
	app.invitationService = &service.InvitationService{
		Store:      app.db,
		Email:      email,
		Activity:   activity,
		Notifier:   notifier,
		DefaultTTL: app.cfg.InvitationTTL,
	}

	app.reaperService = service.NewReaperService(
		app.db,
		app.lifecycleService,
		app.logger,
		app.cfg.ReaperInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.WorkspaceService = app.workspaceService
	router.LifecycleService = app.lifecycleService
	router.MembershipService = app.membershipService
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
