package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agrovale/pomar-backend/api/routes"
	"github.com/agrovale/pomar-backend/internal/catalog"
	"github.com/agrovale/pomar-backend/internal/orders"
	"github.com/agrovale/pomar-backend/internal/reconciliation"
	"github.com/agrovale/pomar-backend/pkg/config"
	"github.com/agrovale/pomar-backend/pkg/db"
	"github.com/agrovale/pomar-backend/pkg/enums"
	"github.com/agrovale/pomar-backend/pkg/logger"
	"github.com/agrovale/pomar-backend/pkg/metrics"
	"github.com/agrovale/pomar-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	channel, err := enums.ParseSettlementChannel(cfg.Reconciliation.Channel)
	if err != nil {
		logg.Error(context.Background(), "invalid reconciliation channel", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	reconciliationMetrics := metrics.NewReconciliationMetrics(registry)

	ordersRepo := orders.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	reconciliationRepo := reconciliation.NewRepository(dbClient.DB())

	ordersSvc, err := orders.NewService(ordersRepo, catalogRepo, dbClient, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	ordersSvc = orders.WithMetrics(ordersSvc, ledgerMetrics)

	reconciliationSvc, err := reconciliation.NewService(reconciliationRepo, dbClient, nil, channel, reconciliationMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"channel": channel,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, ordersSvc, reconciliationSvc),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
