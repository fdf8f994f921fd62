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

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/hdnotes/internal/auth/http"
	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/mongo"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
	"github.com/aussiebroadwan/hdnotes/pkg/mailx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// BuildVersion is stamped at build time:
//
//	go build -ldflags "-X github.com/aussiebroadwan/hdnotes/internal/auth/app.BuildVersion=v1.2.3"
var BuildVersion = "dev"

// migrator is implemented by every primary store driver.
type migrator interface {
	store.Store
	ApplyMigrations() error
}

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger
	clock  func() time.Time

	// Core dependencies
	db     store.Store
	rdb    *goredis.Client // Optional: only with CREDENTIAL_STORE=redis
	mailer mailx.Sender
	signer *jwtx.HS256Signer
	keys   *jwtx.KeySet

	// Services
	tokenService        *service.TokenService
	otpService          *service.OTPService
	userService         *service.UserService
	noteService         *service.NoteService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:   cfg,
		clock: time.Now,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, keys, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.signer, app.keys = signer, keys

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initMailer(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed HTTP handler without starting a listener.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"mail", app.cfg.MailDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}
	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured primary store, applies its migrations
// and optionally moves credentials to Redis.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  migrator
		err error
	)
	switch app.cfg.StoreDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	case DriverMongo:
		db, err = mongo.NewStore(ctx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", app.cfg.StoreDriver, err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)

	if app.cfg.CredentialStore != DriverRedis {
		return nil
	}

	rdb, err := redis.Open(ctx, app.cfg.RedisURL)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.rdb = rdb
	app.db = store.WithCredentials(db, redis.NewCredentials(rdb, redis.DefaultPrefix))
	app.logger.Info("pending credentials stored in redis")
	return nil
}

func (app *Application) initMailer() error {
	branding := mailx.Branding{
		From:    app.cfg.MailFrom,
		AppName: app.cfg.MailAppName,
		TTL:     app.cfg.OTPTTL,
	}

	if app.cfg.MailDriver == MailLog {
		if app.cfg.Env != "dev" {
			app.logger.Warn("MAIL_DRIVER=log outside dev; codes are written to the log and never emailed")
		}
		app.mailer = mailx.NewLogSender(branding)
		return nil
	}

	sender, err := mailx.NewSMTPSender(mailx.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		TLS:      app.cfg.SMTPTLS,
		Timeout:  10 * time.Second,
	}, branding)
	if err != nil {
		return fmt.Errorf("failed to initialize smtp sender: %w", err)
	}
	app.mailer = sender
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	// One clock for minting and verifying; tests move it.
	now := func() time.Time { return app.clock() }

	app.tokenService = &service.TokenService{
		Signer: app.signer,
		Verifier: jwtx.NewVerifierHS256(app.keys, jwtx.VerifyOptions{
			Issuer: app.cfg.Issuer,
			Now:    now,
		}),
		Store:  app.db,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
		Now:    now,
	}

	app.otpService = &service.OTPService{
		Store:  app.db,
		Mailer: app.mailer,
		Tokens: app.tokenService,
		TTL:    app.cfg.OTPTTL,
		Now:    now,
	}
	app.userService = &service.UserService{Store: app.db}
	app.noteService = &service.NoteService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.OTPService = app.otpService
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.NoteService = app.noteService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
