package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitrinalabs/storefront-backend/api/controllers"
	"github.com/vitrinalabs/storefront-backend/api/middleware"
	"github.com/vitrinalabs/storefront-backend/internal/cart"
	"github.com/vitrinalabs/storefront-backend/internal/prefs"
	"github.com/vitrinalabs/storefront-backend/internal/pricebounds"
	"github.com/vitrinalabs/storefront-backend/internal/quotation"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
	"github.com/vitrinalabs/storefront-backend/pkg/metrics"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       redis.Pinger
	CMS         *cms.Client
	Catalog     controllers.CatalogSearcher
	PriceBounds *pricebounds.Resolver
	Cart        cart.Service
	Quotation   quotation.Service
	Prefs       prefs.Service
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
		r.Use(middleware.Session(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{productID}", controllers.ProductDetail(deps.CMS, logg))
		})
		r.Get("/price-range", controllers.PriceRange(deps.PriceBounds, logg))

		r.Get("/categories", controllers.CategoryTree(deps.CMS, cfg.CMS, logg))
		r.Get("/brands", controllers.BrandList(deps.CMS, cfg.CMS, logg))
		r.Get("/places", controllers.PlaceList(deps.CMS, cfg.CMS, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Route("/quotation", func(r chi.Router) {
			r.Get("/", controllers.QuotationFetch(deps.Quotation, logg))
			r.Put("/place", controllers.QuotationSetPlace(deps.Quotation, logg))
			r.Put("/categories", controllers.QuotationSetCategories(deps.Quotation, logg))
			r.Post("/next", controllers.QuotationNext(deps.Quotation, logg))
			r.Post("/previous", controllers.QuotationPrevious(deps.Quotation, logg))
			r.Post("/step", controllers.QuotationGoToStep(deps.Quotation, logg))
			r.Post("/complete", controllers.QuotationComplete(deps.Quotation, logg))
			r.Delete("/", controllers.QuotationReset(deps.Quotation, logg))
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeFetch(deps.Prefs, logg))
			r.Put("/", controllers.ThemeSet(deps.Prefs, logg))
			r.Delete("/", controllers.ThemeClear(deps.Prefs, logg))
		})
	})

	return r
}
