package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/rfigueroa/wholesale-portal-backend/api/routes"
	cartsvc "github.com/rfigueroa/wholesale-portal-backend/internal/cart"
	checkoutsvc "github.com/rfigueroa/wholesale-portal-backend/internal/checkout"
	"github.com/rfigueroa/wholesale-portal-backend/internal/customers"
	"github.com/rfigueroa/wholesale-portal-backend/internal/inventory"
	"github.com/rfigueroa/wholesale-portal-backend/internal/orders"
	"github.com/rfigueroa/wholesale-portal-backend/internal/pricing"
	product "github.com/rfigueroa/wholesale-portal-backend/internal/products"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/config"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/logger"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/metrics"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/migrate"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	tenantResolver, err := tenant.NewResolver(tenant.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create tenant resolver", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(pricing.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(conn)
	ledger := inventory.NewLedger(conn)

	productService, err := product.NewService(productRepo, pricingService, ledger)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartRepo := cartsvc.NewRepository(conn)
	cartService, err := cartsvc.NewService(cartRepo, dbClient, productRepo, pricingService, ledger)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(conn)
	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartRepo,
		customers.NewRepository(conn),
		productRepo,
		pricingService,
		ledger,
		ordersRepo,
		orders.NewNumberGenerator(conn, cfg.Checkout.OrderNumberPrefix),
		metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			routes.Stores{
				Sessions:    redisClient,
				Idempotency: redisClient,
				RedisPinger: redisClient,
			},
			tenantResolver,
			productService,
			cartService,
			checkoutService,
			ordersService,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := multierr.Append(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error closing resources", err)
		os.Exit(1)
	}
}
