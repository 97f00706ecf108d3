package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bellakids/storefront-backend/api/controllers"
	"github.com/bellakids/storefront-backend/api/middleware"
	authsvc "github.com/bellakids/storefront-backend/internal/auth"
	cartsvc "github.com/bellakids/storefront-backend/internal/cart"
	"github.com/bellakids/storefront-backend/internal/catalog"
	"github.com/bellakids/storefront-backend/internal/media"
	ordersvc "github.com/bellakids/storefront-backend/internal/order"
	"github.com/bellakids/storefront-backend/pkg/auth/session"
	"github.com/bellakids/storefront-backend/pkg/config"
	"github.com/bellakids/storefront-backend/pkg/db"
	"github.com/bellakids/storefront-backend/pkg/i18n"
	"github.com/bellakids/storefront-backend/pkg/logger"
	"github.com/bellakids/storefront-backend/pkg/metrics"
	"github.com/bellakids/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	Catalog         catalog.Service
	Cart            cartsvc.Service
	Order           ordersvc.Service
	Auth            authsvc.Service
	Uploads         *media.Store
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
}

// NewRouter assembles the public storefront surface, the cart routes keyed by
// the shopper's cart token, and the admin panel behind JWT auth.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	defaultLocale := i18n.ParseLocale(cfg.Shop.DefaultLocale)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	if deps.Uploads != nil {
		prefix := deps.Uploads.PublicBasePath()
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(deps.Uploads.Dir())))
		r.Method(http.MethodGet, prefix+"*", fileServer)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Get("/regions", controllers.RegionList(deps.Order, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartToken(logg))
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg, defaultLocale))
			r.Delete("/items/{index}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Put("/region", controllers.CartSetRegion(deps.Cart, logg))
			r.Post("/checkout", controllers.Checkout(deps.Order, logg, defaultLocale))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.With(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg)).
				Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg))
			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(deps.Catalog, deps.Uploads, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(deps.Catalog, deps.Uploads, logg))
				r.Post("/{productId}/toggle-stock", controllers.AdminToggleStock(deps.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Catalog, logg))
			})
		})
	})

	return r
}
