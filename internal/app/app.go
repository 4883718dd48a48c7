package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"crew-service/internal/astronaut"
	"crew-service/internal/config"
	"crew-service/internal/country"
	"crew-service/internal/db"
	"crew-service/internal/expedition"
	"crew-service/internal/health"
	"crew-service/internal/logger"
	"crew-service/internal/messaging"
	"crew-service/internal/middleware"
	"crew-service/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
)

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	logger    *slog.Logger
	db        *bun.DB
	producer  *messaging.Producer
	telemetry *telemetry.Telemetry
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "git_commit", GitCommit, "build_time", BuildTime)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app, err := NewWithConfig(context.Background(), cfg, clockwork.NewRealClock(), slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	return app
}

// NewWithConfig builds the router and its collaborators from cfg. A NATS
// connection failure is not fatal; view events are then dropped.
func NewWithConfig(ctx context.Context, cfg *config.Config, clock clockwork.Clock, slogLogger *slog.Logger) (*App, error) {
	tel, err := telemetry.Init(ctx, cfg.Telemetry, ServiceName, Version, slogLogger)
	if err != nil {
		return nil, err
	}
	appMetrics := tel.Metrics

	database, err := db.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, database, db.Models...); err != nil {
		database.Close()
		return nil, err
	}
	if err := appMetrics.Database.RegisterDB(database.DB, appMetrics.Meter()); err != nil {
		slogLogger.Warn("failed to register database pool metrics", "error", err)
	}
	if err := appMetrics.Health.RegisterServiceInfo(appMetrics.Meter(), ServiceName, Version, cfg.Env); err != nil {
		slogLogger.Warn("failed to register service info metric", "error", err)
	}
	if err := appMetrics.Health.RegisterDependencies(appMetrics.Meter(), "database"); err != nil {
		slogLogger.Warn("failed to register dependency metrics", "error", err)
	}

	app := &App{
		config:    cfg,
		router:    chi.NewRouter(),
		logger:    slogLogger,
		db:        database,
		telemetry: tel,
	}

	var publisher messaging.ViewPublisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, clock, slogLogger, appMetrics)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			app.producer = producer
			publisher = producer
		}
	}

	app.router.Use(chimiddleware.RequestID)
	app.router.Use(chimiddleware.Recoverer)
	app.router.Use(middleware.CORS())
	if cfg.Server.RequestTimeout > 0 {
		app.router.Use(chimiddleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))
	}

	health.NewHandler(database, slogLogger, appMetrics).RegisterRoutes(app.router)

	countryService := country.NewService(country.NewRepository(database, appMetrics))
	countryHandler := country.NewHandler(countryService, slogLogger, appMetrics)

	astronautService := astronaut.NewService(astronaut.NewRepository(database, appMetrics), clock)
	astronautHandler := astronaut.NewHandler(astronautService, publisher, slogLogger, appMetrics)

	expeditionService := expedition.NewService(expedition.NewRepository(database, appMetrics), clock)
	expeditionHandler := expedition.NewHandler(expeditionService, publisher, slogLogger, appMetrics)

	app.router.Route("/api", func(r chi.Router) {
		countryHandler.RegisterRoutes(r)
		astronautHandler.RegisterRoutes(r)
		expeditionHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app, nil
}

func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, then releases NATS, telemetry and the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	if a.producer != nil {
		errs = append(errs, a.producer.Close())
	}
	errs = append(errs, a.telemetry.Shutdown(ctx, a.logger))
	db.Close(a.db)

	return errors.Join(errs...)
}
