package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-pricing/api/controllers"
	"github.com/angelmondragon/storefront-pricing/api/middleware"
	product "github.com/angelmondragon/storefront-pricing/internal/products"
	"github.com/angelmondragon/storefront-pricing/internal/stores"
	"github.com/angelmondragon/storefront-pricing/pkg/config"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	rateStore middleware.RateLimiterStore,
	gatherer prometheus.Gatherer,
	storeService stores.Service,
	productService product.Service,
	pricer controllers.ProductPricer,
	preferences controllers.PreferenceManager,
	cartService controllers.CartService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	ownerPolicy := middleware.NewRateLimitPolicy("owner", cfg.OwnerRateLimit.Window, cfg.OwnerRateLimit.IPLimit)
	throttle := middleware.NewShopperThrottle(cfg.ShopperLimit.RPS, cfg.ShopperLimit.Burst)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisP,
		}))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.ShopperSession(logg))
			r.Use(throttle.Middleware(logg))

			r.Get("/storefronts/{slug}", controllers.StorefrontBySlug(storeService, logg))

			r.Route("/stores/{storeId}", func(r chi.Router) {
				r.Get("/products/{productId}/price", controllers.ProductPrice(pricer, logg))
				r.Get("/products/{productId}/display-price", controllers.ProductDisplayPrice(pricer, logg))
				r.Get("/catalog-preference", controllers.CatalogPreferenceGet(storeService, preferences, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSession(logg))
					r.Put("/catalog-preference", controllers.CatalogPreferencePut(storeService, preferences, logg))
					r.Delete("/catalog-preference", controllers.CatalogPreferenceDelete(storeService, preferences, logg))

					r.Route("/cart", func(r chi.Router) {
						r.Get("/", controllers.CartGet(cartService, logg))
						r.Delete("/", controllers.CartClear(cartService, logg))
						r.Post("/items", controllers.CartAddItem(cartService, logg))
						r.Patch("/items/{lineId}", controllers.CartUpdateItem(cartService, logg))
						r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartService, logg))
					})
				})
			})
		})

		r.Route("/owner/stores/{storeId}", func(r chi.Router) {
			r.Use(middleware.RateLimit(ownerPolicy, rateStore, logg))
			r.Use(middleware.OwnerAuth(cfg.JWT, logg))
			r.Use(middleware.OwnsStore(logg))

			r.Get("/settings", controllers.OwnerGetSettings(storeService, logg))
			r.Put("/settings", controllers.OwnerUpdateSettings(storeService, logg))
			r.Get("/products/{productId}/price-tiers", controllers.OwnerListPriceTiers(productService, logg))
			r.Put("/products/{productId}/price-tiers", controllers.OwnerReplacePriceTiers(productService, logg))
		})
	})

	return r
}
