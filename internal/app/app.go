package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/nilosmferreira/damasios-ai/internal/config"
	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	placecache "github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/cache"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/memory"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/postgres"
	"github.com/nilosmferreira/damasios-ai/internal/interfaces/httpapi"
	basecache "github.com/nilosmferreira/damasios-ai/internal/platform/cache"
	idgen "github.com/nilosmferreira/damasios-ai/internal/platform/id"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/password"
	"github.com/nilosmferreira/damasios-ai/internal/platform/session"
	"github.com/nilosmferreira/damasios-ai/internal/platform/storage"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	users         user.Repository
	athletes      athlete.Repository
	places        place.Repository
	matches       match.Repository
	confirmations match.ConfirmationRepository
	pendings      finance.PendingRepository
	flows         finance.CashFlowRepository
	ledger        finance.LedgerReader
}

// OpenDB opens the instrumented postgres pool and checks it is reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %w", storage.ErrUnavailable, err)
	}

	otelsql.ReportDBStatsMetrics(db.DB)
	return db, nil
}

// NewAuthService builds the credential service the seed command shares with the API.
func NewAuthService(cfg config.Config, users user.Repository, logger *logging.Logger) *usecase.AuthService {
	return usecase.NewAuthService(users, password.NewBcryptHasher(cfg.BcryptCost), idgen.NewUUIDGenerator(), logger)
}

// NewHTTPServer wires the configured store, the services and the router. The returned close
// function releases the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	authSvc := NewAuthService(cfg, repos.users, logger)
	athleteSvc := usecase.NewAthleteService(repos.athletes, authSvc, ids, logger)
	matchSvc := usecase.NewMatchService(
		repos.matches,
		repos.confirmations,
		repos.athletes,
		placecache.NewPlaceRepository(repos.places, basecache.NewStore[[]place.Place](cfg.PlaceCacheTTL)),
		ids,
		logger,
		usecase.MatchOptions{AllowPastMatches: cfg.PresenceAllowPastMatches},
	)
	financeSvc := usecase.NewFinanceService(repos.pendings, repos.flows, repos.ledger, repos.athletes, ids, logger)
	dashboardSvc := usecase.NewDashboardService(repos.athletes, repos.matches, repos.pendings, repos.ledger)

	if cfg.StorageDriver == storage.DriverMemory {
		if err := seedMemoryAdmin(ctx, cfg, authSvc, logger); err != nil {
			_ = closeStore()
			return nil, nil, err
		}
	}

	sessions, err := session.NewManager(session.Options{
		CookieName: cfg.SessionCookieName,
		Secrets:    cfg.SessionSecrets,
		MaxAge:     cfg.SessionMaxAge,
		Secure:     cfg.SessionSecure,
	})
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("build session manager: %w", err)
	}

	gate := httpapi.NewGate(sessions, authSvc, logger)
	handler := httpapi.NewHandler(authSvc, athleteSvc, matchSvc, financeSvc, dashboardSvc, sessions, gate, logger)
	router := httpapi.NewRouter(handler, gate, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeStore, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case storage.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewSeededStore()
		return repositories{
			users:         store.Users(),
			athletes:      store.Athletes(),
			places:        store.Places(),
			matches:       store.Matches(),
			confirmations: store.Confirmations(),
			pendings:      store.Pendings(),
			flows:         store.CashFlows(),
			ledger:        store.Ledger(),
		}, func() error { return nil }, nil
	case storage.DriverPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)
		return repositories{
			users:         postgres.NewUserRepository(db),
			athletes:      postgres.NewAthleteRepository(db),
			places:        postgres.NewPlaceRepository(db),
			matches:       postgres.NewMatchRepository(db),
			confirmations: postgres.NewConfirmationRepository(db),
			pendings:      postgres.NewPendingRepository(db),
			flows:         postgres.NewCashFlowRepository(db),
			ledger:        postgres.NewLedgerRepository(db),
		}, db.Close, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// seedMemoryAdmin gives a fresh in-memory store the same administrator the seed command
// writes to postgres.
func seedMemoryAdmin(ctx context.Context, cfg config.Config, auth *usecase.AuthService, logger *logging.Logger) error {
	_, err := auth.CreateUser(ctx, usecase.CreateUserInput{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     string(user.RoleAdmin),
	})
	if err != nil && !errors.Is(err, usecase.ErrDuplicateEmail) {
		return fmt.Errorf("seed memory admin: %w", err)
	}
	logger.Info("memory admin seeded", "email", cfg.SeedAdminEmail)
	return nil
}
