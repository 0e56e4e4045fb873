package http

import (
	"net/http"

	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует middleware и маршруты. metricsHandler может быть nil.
func (r *Router) Init(storefrontUC usecase.StorefrontUC, httpCfg *cfg.HTTPConfig, sessionCfg *cfg.SessionCfg,
	obs HTTPObserver, metricsHandler http.Handler) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(requestLogger(r.logger))
	if obs != nil {
		r.router.Use(observe(obs))
	}
	r.router.Use(middleware.Recoverer)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if metricsHandler != nil {
		r.router.Handle("/metrics", metricsHandler)
	}

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(httpCfg.SwaggerURL), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		sfHandler := NewStorefrontHandler(storefrontUC, sessionCfg.CookieName, sessionCfg.IdleTTL, r.logger)
		registerStorefrontRoutes(v1, sfHandler)

		catHandler := NewCatalogHandler(storefrontUC, r.logger)
		registerCatalogRoutes(v1, catHandler)
	})
}

func registerStorefrontRoutes(router chi.Router, h *StorefrontHandler) {
	router.Route("/storefront", func(sf chi.Router) {
		sf.Get("/", h.getStorefront)
		sf.Post("/reveal", h.revealMore)
		sf.Put("/search", h.search)
		sf.Put("/sort", h.sort)
		sf.Post("/cart", h.addToCart)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/catalog", func(c chi.Router) {
		c.Post("/import", h.importCatalog)
	})
}
