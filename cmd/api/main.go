package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/cart"
	"github.com/sangkips/restopos-api/internal/domain/invoicing"
	"github.com/sangkips/restopos-api/internal/domain/pricing"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/infrastructure/database"
	"github.com/sangkips/restopos-api/internal/infrastructure/numbering"
	"github.com/sangkips/restopos-api/internal/infrastructure/repository"
	"github.com/sangkips/restopos-api/internal/infrastructure/session"
	"github.com/sangkips/restopos-api/internal/observability/metrics"
	"github.com/sangkips/restopos-api/internal/presentation/http/handler"
	"github.com/sangkips/restopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/restopos-api/internal/presentation/http/routes"
	"github.com/sangkips/restopos-api/pkg/logger"
	"github.com/sangkips/restopos-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.Database.Seed {
		if err := database.SeedCatalog(db); err != nil {
			zl.Warn("failed to seed catalog", zap.Error(err))
		}
	}

	numbers, err := newNumberSource(cfg, db)
	if err != nil {
		zl.Fatal("failed to initialize invoice numbering", zap.Error(err))
	}

	sessions, err := newSessionStore(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize session store", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	m := metrics.New()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	factory := invoicing.NewFactory(numbers)
	registerService := service.NewRegisterService(
		sessions,
		catalogRepo,
		invoiceRepo,
		cart.NewStore(),
		pricing.NewEngine(cfg.POS.TaxRate),
		factory,
		m,
		zl,
	)
	invoiceService := service.NewInvoiceService(invoiceRepo, factory, m, zl)
	reportService := service.NewReportService(invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:   handler.NewHealthHandler(db, version),
		Product:  handler.NewProductHandler(catalogRepo),
		Register: handler.NewRegisterHandler(registerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Report:   handler.NewReportHandler(reportService),
	}

	rateLimiter := middleware.NewBranchRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit), m)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         m,
		Logger:          zl,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, zl)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
			zap.String("numbering", cfg.POS.Numbering),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newNumberSource(cfg *config.Config, db *gorm.DB) (invoicing.NumberSource, error) {
	switch cfg.POS.Numbering {
	case "snowflake":
		return numbering.NewSnowflakeSource(cfg.POS.SnowflakeNode, cfg.POS.InvoiceFormat)
	default:
		return numbering.NewSequenceSource(db, cfg.POS.InvoiceFormat)
	}
}

func newSessionStore(cfg *config.Config, zl *zap.Logger) (domainRepo.SessionRepository, error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	client := session.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	zl.Info("register sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	return session.NewRedisStore(client, cfg.Session.TTL), nil
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				zl.Warn("idempotency purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				zl.Debug("purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
