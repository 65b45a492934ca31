package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfigueroa/wholesale-portal-backend/api/controllers"
	"github.com/rfigueroa/wholesale-portal-backend/api/middleware"
	cartsvc "github.com/rfigueroa/wholesale-portal-backend/internal/cart"
	checkoutsvc "github.com/rfigueroa/wholesale-portal-backend/internal/checkout"
	"github.com/rfigueroa/wholesale-portal-backend/internal/orders"
	product "github.com/rfigueroa/wholesale-portal-backend/internal/products"
	"github.com/rfigueroa/wholesale-portal-backend/internal/tenant"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/config"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/db"
	"github.com/rfigueroa/wholesale-portal-backend/pkg/logger"
	pkgredis "github.com/rfigueroa/wholesale-portal-backend/pkg/redis"
)

// Stores groups the redis surfaces the middleware chain needs. A single
// *redis.Client satisfies all three.
type Stores struct {
	Sessions    pkgredis.SessionChecker
	Idempotency pkgredis.IdempotencyStore
	RedisPinger pkgredis.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	stores Stores,
	tenantResolver tenant.Resolver,
	productService product.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, stores.RedisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, stores.Sessions, logg))
		r.Use(middleware.Idempotency(stores.Idempotency, cfg.Checkout.IdempotencyTTL, logg))
		r.Use(middleware.Tenant(tenantResolver, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/{productId}", controllers.ProductDetail(productService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
		})
	})

	return r
}
