package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/CameronXie/sap-api-layer/internal/api/rest"
	"github.com/CameronXie/sap-api-layer/internal/api/rest/handlers"
	"github.com/CameronXie/sap-api-layer/internal/api/rest/middlewares"
	"github.com/CameronXie/sap-api-layer/internal/config"
	"github.com/CameronXie/sap-api-layer/internal/gateway"
	"github.com/CameronXie/sap-api-layer/internal/logging"
	"github.com/CameronXie/sap-api-layer/internal/metrics"
	"github.com/CameronXie/sap-api-layer/internal/odata"
	"github.com/CameronXie/sap-api-layer/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %s", err)
	}

	level, _ := cfg.Level()
	logger := logging.NewJSONLogger(os.Stdout, level, version.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api_failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	m := metrics.New()

	if !cfg.BackendConfig.NormalizeMutationStatus {
		logger.Info("mutation_status_normalization_disabled")
	}

	client := odata.NewClient(
		logger,
		odata.WithTimeout(cfg.BackendConfig.Timeout),
		odata.WithRecorder(m),
		odata.WithMutationStatusNormalization(cfg.BackendConfig.NormalizeMutationStatus),
	)

	gatewayConfig := gateway.Config{
		BaseURL:              cfg.BackendConfig.BaseURL,
		DefaultPurchaseOrder: cfg.DefaultsConfig.PurchaseOrder,
		DefaultSalesOrder:    cfg.DefaultsConfig.SalesOrder,
	}
	purchaseOrders := gateway.NewPurchaseOrders(client, gatewayConfig, logger)
	salesOrders := gateway.NewSalesOrders(client, gatewayConfig, logger)

	enforcer, err := newEnforcer(cfg.PolicyConfig, logger)
	if err != nil {
		return fmt.Errorf("initializing enforcer: %w", err)
	}

	routerConfig := &rest.RouterConfig{
		GetPurchaseOrderHandler:     handlers.NewGetPurchaseOrderHandler(purchaseOrders, logger),
		GetPurchaseOrderListHandler: handlers.NewGetPurchaseOrderListHandler(purchaseOrders, logger),
		CreatePurchaseOrderHandler: handlers.NewCreatePurchaseOrderHandler(
			purchaseOrders,
			logger,
			cfg.ServerConfig.MaxRequestBody,
		),
		GetSalesOrderHandler:     handlers.NewGetSalesOrderHandler(salesOrders, logger),
		GetSalesOrderListHandler: handlers.NewGetSalesOrderListHandler(salesOrders, logger),
		HealthHandler:            handlers.NewHealthHandler(version.Version),
		AuthorisationMiddleware: middlewares.NewAuthorizationMiddleware(
			newAuthenticator(cfg, logger),
			enforcer,
			logger,
		),
		Middlewares: []middlewares.Middleware{
			middlewares.NewRequestIDMiddleware(logger),
			middlewares.NewMetricsMiddleware(m),
		},
	}

	if cfg.MetricsConfig.Enabled {
		routerConfig.MetricsHandler = m.Handler()
		routerConfig.MetricsPath = cfg.MetricsConfig.Path
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ListenPort),
		Handler:      rest.NewMuxWithHandlers(routerConfig),
		ReadTimeout:  cfg.ServerConfig.ReadTimeout,
		WriteTimeout: cfg.ServerConfig.WriteTimeout,
		IdleTimeout:  cfg.ServerConfig.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("api_listening", "addr", server.Addr, "backend", cfg.BackendConfig.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("api_shutting_down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerConfig.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
