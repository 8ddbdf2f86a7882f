package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/mysewa/sewa/internal/sewa/http"
	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/postgres"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite"
	"github.com/mysewa/sewa/pkg/cryptox"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/mysewa/sewa/pkg/mail"
	"github.com/mysewa/sewa/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the sewa service together.
type Application struct {
	cfg    *Config
	logger *slog.Logger

	db     store.Store
	mailer mail.Mailer

	sessionService      *service.SessionService
	pinService          *service.PinService
	invitationService   *service.InvitationService
	leaseService        *service.LeaseService
	propertyService     *service.PropertyService
	housekeepingService *service.HousekeepingService // nil unless a sweep schedule is set

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg *Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sewa",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
		}),
	}

	cryptox.SetPepperPath(cfg.Security.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		if err := app.housekeepingService.Start(); err != nil {
			return err
		}
	}

	app.logger.Info("sewa service starting", "port", app.cfg.Server.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains in-flight requests, stops the sweep and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sewa service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("sewa service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.Database.Driver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.Database.DSN)
	default:
		file := app.cfg.Database.File
		if file != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = sqlite.NewStore(file)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", app.cfg.Database.Driver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.Database.Driver)
	return nil
}

func (app *Application) initMailer() error {
	if !app.cfg.SMTP.Enabled {
		if app.cfg.IsProd() {
			app.logger.Warn("smtp disabled in prod, outgoing mail will only be logged")
		}
		app.mailer = mail.LogMailer{}
		return nil
	}

	s := app.cfg.SMTP
	m, err := mail.NewSMTPMailer(mail.SMTPSettings{
		Enabled:  s.Enabled,
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: s.Password,
		From:     s.From,
		UseTLS:   s.UseTLS,
		Timeout:  s.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize smtp mailer: %w", err)
	}
	app.mailer = m
	return nil
}

func (app *Application) initSigner() (jwtx.Signer, jwtx.Verifier, error) {
	var pemKey []byte
	if strings.EqualFold(app.cfg.JWT.Algorithm, jwtx.AlgEdDSA) {
		key, err := cryptox.LoadOrGenerateEd25519Key(app.cfg.JWT.KeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		pemKey = key
	}

	signer, verifier, err := jwtx.NewPair(app.cfg.JWT.Algorithm, []byte(app.cfg.JWT.Secret), pemKey, jwtx.VerifyOptions{
		Issuer: app.cfg.JWT.Issuer,
		Leeway: 30 * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	return signer, verifier, nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	hasher, err := cryptox.NewHasher(app.cfg.Security.HashAlgorithm, app.cfg.Security.BcryptCost)
	if err != nil {
		return err
	}
	if err := app.initMailer(); err != nil {
		return err
	}
	signer, verifier, err := app.initSigner()
	if err != nil {
		return err
	}

	deps := service.Deps{
		Store:        app.db,
		Hasher:       hasher,
		Mailer:       app.mailer,
		MailFrom:     app.cfg.SMTP.From,
		StoreTimeout: app.cfg.Database.Timeout,
		MailTimeout:  app.cfg.SMTP.Timeout,
	}

	app.sessionService = &service.SessionService{
		Deps:     deps,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   app.cfg.JWT.Issuer,
		TTL:      app.cfg.JWT.TTL,
	}
	app.pinService = &service.PinService{Deps: deps, Sessions: app.sessionService}
	app.invitationService = &service.InvitationService{
		Deps:            deps,
		FrontendBaseURL: app.cfg.FrontendBaseURL,
	}
	app.leaseService = &service.LeaseService{Deps: deps}
	app.propertyService = &service.PropertyService{Deps: deps}

	if app.cfg.Housekeeping.Schedule != "" {
		app.housekeepingService = &service.HousekeepingService{
			Deps:     deps,
			Logger:   app.logger,
			Schedule: app.cfg.Housekeeping.Schedule,
		}
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.db, BuildVersion, app.logger)
	router.Cookie = httpx.SessionCookie{
		Name:   app.cfg.Server.CookieName,
		Secure: app.cfg.IsProd(),
	}
	router.Limits = app.cfg.RateLimit.Limits()
	router.ExposeMetrics = app.cfg.Metrics.Enabled

	router.SessionService = app.sessionService
	router.PinService = app.pinService
	router.InvitationService = app.invitationService
	router.LeaseService = app.leaseService
	router.PropertyService = app.propertyService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
