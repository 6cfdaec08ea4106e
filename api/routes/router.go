package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campmart-lk/checkout/api/controllers"
	"github.com/campmart-lk/checkout/api/middleware"
	"github.com/campmart-lk/checkout/internal/cart"
	"github.com/campmart-lk/checkout/internal/payments"
	"github.com/campmart-lk/checkout/pkg/config"
	"github.com/campmart-lk/checkout/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient controllers.Pinger,
	backendClient controllers.Pinger,
	cartService cart.Service,
	checkoutService payments.Service,
	reconciler *payments.Reconciler,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient, backendClient))
	})

	r.Get("/ping", controllers.PublicPing())

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Put("/{renterId}", controllers.CartUpsert(cartService, logg))
			r.Get("/{renterId}", controllers.CartFetch(cartService, logg))
		})
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
	})

	// Browser-facing gateway navigations live outside the API prefix; the
	// gateway is configured with these exact URLs.
	r.Route("/payhere", func(r chi.Router) {
		r.Get("/return", controllers.PayHereReturn(reconciler, logg))
		r.Get("/cancel", controllers.PayHereCancel(reconciler, logg))
	})

	return r
}
