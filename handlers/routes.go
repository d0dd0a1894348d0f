package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"profile_finder/config"
	_ "profile_finder/docs" // 导入 swagger 文档
	"profile_finder/services"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, page *services.SearchPage, searcher services.Searcher) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))
	r.Handle("/metrics", promhttp.Handler())

	pages := NewPageHandler(page)
	api := NewAPIHandler(page, searcher)

	r.Get("/healthz", api.Health)
	r.Post("/api/search", api.Search)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(cfg.Session.CookieName))

		r.Get("/", pages.Index)
		r.Post("/search", pages.Search)
		r.Post("/results/decision", pages.Decision)
		r.Post("/results/deep-dive", pages.DeepDive)
		r.Post("/results/back", pages.Back)
		r.Post("/new-search", pages.NewSearch)

		r.Get("/api/state", api.State)
	})
}
