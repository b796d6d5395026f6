package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/config"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/database"
	"github.com/sangkips/backoffice-api/internal/infrastructure/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/handler"
	"github.com/sangkips/backoffice-api/internal/presentation/http/middleware"
	"github.com/sangkips/backoffice-api/internal/presentation/http/routes"
	"github.com/sangkips/backoffice-api/pkg/invoice"
	"github.com/sangkips/backoffice-api/pkg/printer"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
)

func main() {
	// Load configuration
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.SlogLevel()})))

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	draftRepo := repository.NewDraftRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	node, err := snowflake.NewNode(cfg.Drafts.NodeID)
	if err != nil {
		slog.Error("invalid draft node id", "node_id", cfg.Drafts.NodeID, "error", err)
		os.Exit(1)
	}

	// Store API client
	store := storeapi.NewClient(storeapi.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		Endpoints: cfg.Upstream.Endpoints,
	}, &http.Client{})
	sequencer := storeapi.NewSequencer()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:         cfg.Printer.Type,
		USBPath:      cfg.Printer.USBPath,
		Address:      cfg.Printer.Address,
		DialTimeout:  cfg.Printer.DialTimeout,
		WriteTimeout: cfg.Printer.WriteTimeout,
	})
	if err != nil {
		slog.Warn("failed to initialize printer", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	billingService := service.NewBillingService(store, draftRepo, node, sequencer)
	debtService := service.NewDebtService(store, sequencer)
	draftService := service.NewDraftService(draftRepo, billingService)
	printService := service.NewPrintService(thermalPrinter, billingService, debtService, service.PrintConfig{
		Store: invoice.StoreInfo{
			Name:    cfg.Store.Name,
			Address: cfg.Store.Address,
			Phone:   cfg.Store.Phone,
			TaxID:   cfg.Store.TaxID,
		},
		Currency:        cfg.Billing.Currency,
		DefaultLanguage: invoice.ParseLanguage(cfg.Billing.DefaultLanguage, invoice.English),
		CharWidth:       cfg.Printer.CharWidth,
		CodePage:        cfg.Printer.CodePage,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Bill:    handler.NewBillHandler(billingService),
		Debt:    handler.NewDebtHandler(debtService),
		Draft:   handler.NewDraftHandler(draftService),
		Printer: handler.NewPrinterHandler(printService),
	}

	rateLimiter := middleware.NewCallerRateLimiter(
		middleware.RateLimiterConfigFromWindow(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

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
		slog.Info("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// purgeIdempotencyKeys removes expired keys once an hour.
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				slog.Error("failed to purge idempotency keys", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged idempotency keys", "count", n)
			}
		}
	}
}
