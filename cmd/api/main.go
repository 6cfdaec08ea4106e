package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campmart-lk/checkout/api/routes"
	"github.com/campmart-lk/checkout/internal/backend"
	"github.com/campmart-lk/checkout/internal/cart"
	"github.com/campmart-lk/checkout/internal/orderid"
	"github.com/campmart-lk/checkout/internal/payments"
	"github.com/campmart-lk/checkout/pkg/config"
	"github.com/campmart-lk/checkout/pkg/logger"
	"github.com/campmart-lk/checkout/pkg/metrics"
	"github.com/campmart-lk/checkout/pkg/payhere"
	"github.com/campmart-lk/checkout/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "checkout-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "checkout-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gatewayClient, err := payhere.NewClient(context.Background(), cfg.PayHere, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to configure payment gateway", err)
		os.Exit(1)
	}

	backendClient, err := backend.NewClient(context.Background(), cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to configure booking backend client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Checkout.CartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	correlationStore, err := payments.NewRedisCorrelationStore(redisClient, cfg.Checkout.HandleTTL, cfg.Checkout.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create correlation store", err)
		os.Exit(1)
	}

	requestBuilder, err := payments.NewRequestBuilder(gatewayClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create request builder", err)
		os.Exit(1)
	}

	dispatcher, err := payments.NewFormPostDispatcher(gatewayClient.CheckoutURL())
	if err != nil {
		logg.Error(context.Background(), "failed to create gateway dispatcher", err)
		os.Exit(1)
	}

	advanceRate, err := cfg.Checkout.Rate()
	if err != nil {
		logg.Error(context.Background(), "invalid advance rate", err)
		os.Exit(1)
	}

	checkoutService, err := payments.NewService(
		cartStore,
		requestBuilder,
		correlationStore,
		backendClient,
		dispatcher,
		orderid.New(cfg.Checkout.OrderPrefix),
		advanceRate,
		checkoutMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	reconciler, err := payments.NewReconciler(correlationStore, backendClient, cartStore, checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciler", err)
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
		"gateway": gatewayClient.Environment(),
	})
	logg.Info(ctx, "starting checkout api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			backendClient,
			cartService,
			checkoutService,
			reconciler,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "checkout api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
