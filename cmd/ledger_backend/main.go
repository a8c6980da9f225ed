package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/commonsfund/ledger_backend/internal/core/services"
	"github.com/commonsfund/ledger_backend/internal/dto"
	"github.com/commonsfund/ledger_backend/internal/handlers"
	"github.com/commonsfund/ledger_backend/internal/middleware"
	"github.com/commonsfund/ledger_backend/internal/platform/config"
	"github.com/commonsfund/ledger_backend/internal/repositories/database/memory"
	"github.com/commonsfund/ledger_backend/internal/repositories/database/pgsql"
	"github.com/commonsfund/ledger_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var pool *pgxpool.Pool
	var repos queryRepos

	if cfg.LedgerStore == "memory" {
		logger.Warn("Using in-memory ledger store; data will not persist")
		store := memory.New()
		repos = queryRepos{Ledger: store, Accounts: store, Expenses: store, Orders: store}
	} else {
		pool, err = database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(pool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			os.Exit(1)
		}

		pgRepos := pgsql.NewRepositories(pool)
		repos = queryRepos{Ledger: pgRepos.Ledger, Accounts: pgRepos.Accounts, Expenses: pgRepos.Expenses, Orders: pgRepos.Orders}
	}

	querySvc := services.NewTransactionQueryService(
		repos.Ledger,
		repos.Accounts,
		repos.Expenses,
		repos.Orders,
		services.TransactionQueryConfig{
			DefaultLimit: cfg.DefaultLimit,
			MaxLimit:     cfg.MaxLimit,
			GroupWindow:  cfg.GroupWindow,
		},
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterValidations()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermem.NewStore(), rate)

	handlers.RegisterHealthRoutes(r, pool, cfg.EnableDBCheck)
	r.GET("/metrics", middleware.MetricsHandler())

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.ActorMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	handlers.RegisterTransactionRoutes(v1, querySvc)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// queryRepos bundles the engine's storage ports regardless of backend.
type queryRepos struct {
	Ledger   portsrepo.LedgerEntryReader
	Accounts portsrepo.AccountReader
	Expenses portsrepo.ExpenseResolver
	Orders   portsrepo.OrderResolver
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
