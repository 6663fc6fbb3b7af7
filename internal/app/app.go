package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/weekcal/internal/config"
	"github.com/klokku/weekcal/internal/database"
	"github.com/klokku/weekcal/pkg/profile"
	"github.com/klokku/weekcal/pkg/weekdate"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// An invalid default rule must stop the service before it accepts requests.
	defaults, err := weekdate.DefaultSelection(cfg.Rule)
	if err != nil {
		return nil, fmt.Errorf("invalid default rule: %w", err)
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	var db *pgxpool.Pool
	var profileRepo profile.Repository
	if cfg.Database.Enabled {
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err = database.Open(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
		profileRepo = profile.NewRepository(db)
	} else {
		log.Warn("Database disabled, profiles are kept in memory only")
		profileRepo = profile.NewRepositoryStub()
	}

	r := mux.NewRouter()

	deps := BuildDependencies(profileRepo, defaults, location)

	SetupMiddleware(r, deps, cfg)

	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Infof("Default week rule: %s, calendar %s", defaults.Rule, defaults.Calendar.ID())
	return &Application{cfg: cfg, db: db, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks until it fails or the process receives SIGINT or SIGTERM.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	}
}

// Close releases the database pool, if one was opened.
func (a *Application) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
