package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/attune-api/internal/api"
	apiMiddleware "github.com/phrazzld/attune-api/internal/api/middleware"
	"github.com/phrazzld/attune-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	emotionHandler := api.NewEmotionHandler(app.insightsService)
	strategyHandler := api.NewStrategyHandler(app.insightsService, app.config.Recommendation.MaxLimit)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/emotions", emotionHandler.LogEmotion)
		r.Get("/emotions/patterns", emotionHandler.GetPatterns)
		r.Post("/journal", emotionHandler.AddJournalEntry)

		r.Route("/strategies", func(r chi.Router) {
			r.Get("/", strategyHandler.ListStrategies)
			r.Get("/recommendations", strategyHandler.GetRecommendations)
			r.Get("/preferences", strategyHandler.GetPreferences)
			r.Put("/preferences", strategyHandler.UpdatePreferences)
			r.Post("/feedback", strategyHandler.RecordFeedback)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
