package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/DRSN-tech/fitting-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.Search, cacheUC usecase.Cache, recommendUC usecase.Recommend) {
	r.router.Use(RequestID)
	r.router.Use(RequestLogger(r.logger))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerSimilarityRoutes(v1, NewSimilarityHandler(searchUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(searchUC, r.logger))
		registerAdminRoutes(v1, NewAdminHandler(cacheUC, r.logger))
		registerRecommendRoutes(v1, NewRecommendHandler(recommendUC, r.logger))
	})
}

func registerSimilarityRoutes(router chi.Router, h *SimilarityHandler) {
	router.Route("/similarity", func(sim chi.Router) {
		sim.Post("/search", h.search)
		sim.Get("/status", h.status)
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/{pos}", h.getProduct)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Route("/admin/cache", func(admin chi.Router) {
		admin.Post("/warm-up", h.warmUpCache)
		admin.Get("/status", h.cacheStatus)
	})
}

func registerRecommendRoutes(router chi.Router, h *RecommendHandler) {
	router.Route("/recommend", func(rec chi.Router) {
		rec.Post("/", h.recommend)
		rec.Get("/random", h.randomProducts)
		rec.Get("/catalog", h.catalogStats)
		rec.Get("/status", h.status)
	})
}
