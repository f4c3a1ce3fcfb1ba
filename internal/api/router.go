package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clearbill/assess/internal/events"
	"github.com/clearbill/assess/internal/export"
	"github.com/clearbill/assess/internal/scoring"
	"github.com/clearbill/assess/internal/store"
)

func NewRouter(engine *scoring.Engine, s store.Store, ev events.Client, wh *export.WebhookClient, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	assessments := NewAssessmentsHandler(engine)
	submissions := NewSubmissionsHandler(engine, s, ev, wh, logger)
	cat := NewCatalogHandler(engine)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/assessments", func(r chi.Router) {
			r.Post("/visible", assessments.Visible)
			r.Post("/score", assessments.Score)
			r.Post("/gap", assessments.Gap)
			r.Post("/recommendations", assessments.Recommendations)
			r.Post("/projections", assessments.Projections)
			r.Post("/insights", assessments.Insights)
			r.Post("/resiliency", assessments.Resiliency)
			r.Post("/strengths", assessments.Strengths)
			r.Post("/report", assessments.Report)
		})

		r.Get("/catalog", cat.Info)
		r.Get("/catalog/questions", cat.Questions)
		r.Get("/catalog/segments", cat.Segments)

		r.Post("/submissions", submissions.Create)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/submissions", submissions.List)
			r.Get("/submissions/export.csv", submissions.ExportCSV)
			r.Get("/submissions/{id}", submissions.Get)
			r.Get("/stats", submissions.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
