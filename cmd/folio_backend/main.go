package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/hoteldesk/folio-backend/internal/adapters/database/pgsql"
	"github.com/hoteldesk/folio-backend/internal/adapters/gateway"
	"github.com/hoteldesk/folio-backend/internal/adapters/receipt"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/core/services"
	"github.com/hoteldesk/folio-backend/internal/handlers"
	"github.com/hoteldesk/folio-backend/internal/middleware"
	"github.com/hoteldesk/folio-backend/pkg/config"
	"github.com/hoteldesk/folio-backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Folio Backend API
// @version 1.0
// @description Hotel front-desk folio and billing API.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := buildServices(dbPool, cfg)
	handlers.RegisterRoutes(r, cfg, serviceContainer, buildRateLimiter(cfg, logger))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildServices wires the repositories, adapters and services together.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config) *portssvc.ServiceContainer {
	folioRepo := pgsql.NewPgxFolioRepository(dbPool)
	txnRepo := pgsql.NewPgxTransactionRepository(dbPool)
	transferRepo := pgsql.NewPgxTransferRepository(dbPool)
	settlementRepo := pgsql.NewPgxSettlementRepository(dbPool)
	auditRepo := pgsql.NewPgxAuditRepository(dbPool)
	reservationRepo := pgsql.NewPgxReservationRepository(dbPool)
	userRepo := pgsql.NewPgxUserRepository(dbPool)

	paymentGateway := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	txnService := services.NewTransactionService(txnRepo, folioRepo, paymentGateway, cfg.DefaultTaxRate)

	return &portssvc.ServiceContainer{
		Folio:       services.NewFolioService(folioRepo, txnRepo, reservationRepo),
		Transaction: txnService,
		Transfer:    services.NewTransferService(folioRepo, txnRepo, transferRepo),
		Settlement: services.NewSettlementService(
			settlementRepo,
			folioRepo,
			txnRepo,
			reservationRepo,
			txnService,
			receipt.NewPDFRenderer(cfg.HotelName),
		),
		Audit:       services.NewAuditService(auditRepo, folioRepo),
		Reservation: services.NewReservationService(reservationRepo),
		User:        services.NewUserService(userRepo),
		Gateway:     paymentGateway,
	}
}

// buildRateLimiter creates an in-memory IP rate limiter from the configured
// rate, or nil when the rate is unset or malformed.
func buildRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid rate limit format, rate limiting disabled", slog.String("rate", cfg.RateLimit))
		return nil
	}
	return limiter.New(memory.NewStore(), rate)
}
