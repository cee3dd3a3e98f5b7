package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sourcegraph/conc"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/openfairway/one-and-done/internal/config"
	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/domain/rankings"
	"github.com/openfairway/one-and-done/internal/domain/schedule"
	"github.com/openfairway/one-and-done/internal/domain/selection"
	"github.com/openfairway/one-and-done/internal/domain/user"
	"github.com/openfairway/one-and-done/internal/infrastructure/account/rounds"
	"github.com/openfairway/one-and-done/internal/infrastructure/feeds/datagolf"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/cache"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/memory"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/postgres"
	"github.com/openfairway/one-and-done/internal/infrastructure/sheets"
	"github.com/openfairway/one-and-done/internal/interfaces/httpapi"
	basecache "github.com/openfairway/one-and-done/internal/platform/cache"
	"github.com/openfairway/one-and-done/internal/platform/logging"
	"github.com/openfairway/one-and-done/internal/platform/resilience"
	"github.com/openfairway/one-and-done/internal/usecase"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server

	db          *sqlx.DB
	logger      *logging.Logger
	sweepStop   chan struct{}
	sweepWG     conc.WaitGroup
	sweepEvery  time.Duration
	selectionSv *usecase.SelectionService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db            *sqlx.DB
		selectionRepo selection.Repository
		ledgerRepo    ledger.Repository
		userRepo      user.Repository
	)
	if cfg.DBURL != "" {
		dsn := applyStatementTimeout(normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), cfg.DBStatementTimeout)
		opened, err := otelsqlx.Open("postgres", dsn,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		selectionRepo = postgres.NewSelectionRepository(db)
		ledgerRepo = postgres.NewLedgerRepository(db)
		userRepo = postgres.NewUserRepository(db)
		logger.Info("storage backend", "kind", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		memSelections, memLedger := memory.NewStores()
		selectionRepo = memSelections
		ledgerRepo = memLedger
		userRepo = memory.NewUserRepository(memory.SeedUsers())
		logger.Info("storage backend", "kind", "memory")
	}

	var scheduleProv schedule.Provider = sheets.NewScheduleProvider(cfg.SheetsDir)
	var rankingsProv rankings.Provider = sheets.NewRankingsProvider(cfg.SheetsDir)
	resultsProv := sheets.NewResultsProvider(cfg.SheetsDir)
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		scheduleProv = cache.NewScheduleProvider(scheduleProv, store)
		rankingsProv = cache.NewRankingsProvider(rankingsProv, store)
	}

	var fieldProv usecase.FieldProvider
	if cfg.DataGolfEnabled {
		fieldProv = datagolf.NewClient(datagolf.ClientConfig{
			BaseURL:    cfg.DataGolfBaseURL,
			Key:        cfg.DataGolfKey,
			Tour:       cfg.DataGolfTour,
			Timeout:    cfg.DataGolfTimeout,
			MaxRetries: cfg.DataGolfMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.DataGolfCircuitEnabled,
				FailureThreshold: cfg.DataGolfCircuitFailureCount,
				OpenTimeout:      cfg.DataGolfCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.DataGolfCircuitHalfOpenMax,
			},
		})
	}

	selectionSvc := usecase.NewSelectionService(selectionRepo, scheduleProv, logger)
	selectionSvc.ConfigureSweep(cfg.AutoLockSweepInterval, cfg.AutoLockSweepWorkers)
	ledgerSvc := usecase.NewLedgerService(ledgerRepo, resultsProv, logger)
	standingsSvc := usecase.NewStandingsService(ledgerRepo, userRepo)
	scheduleSvc := usecase.NewScheduleService(scheduleProv, rankingsProv, fieldProv, selectionRepo, selectionSvc, logger)
	profileSvc := usecase.NewProfileService(userRepo)

	verifier := rounds.NewClient(
		&http.Client{Timeout: cfg.RoundsTimeout},
		cfg.RoundsBaseURL,
		cfg.RoundsIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(selectionSvc, ledgerSvc, standingsSvc, scheduleSvc, profileSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:      server,
		db:          db,
		logger:      logger,
		sweepStop:   make(chan struct{}),
		sweepEvery:  cfg.AutoLockSweepInterval,
		selectionSv: selectionSvc,
	}, nil
}

// StartBackground launches the periodic auto-lock sweep.
func (a *App) StartBackground() {
	a.sweepWG.Go(func() {
		ticker := time.NewTicker(a.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-a.sweepStop:
				return
			case <-ticker.C:
				if _, err := a.selectionSv.AutoLockPastTournaments(context.Background()); err != nil {
					a.logger.Warn("background autolock sweep failed", "error", err)
				}
			}
		}
	})
}

// Shutdown stops the background sweep, drains the HTTP server, and closes
// the database.
func (a *App) Shutdown(ctx context.Context) error {
	close(a.sweepStop)
	a.sweepWG.Wait()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}
