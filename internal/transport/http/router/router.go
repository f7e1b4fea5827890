package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/glutenpeek/tracker-service/internal/config"
	"github.com/glutenpeek/tracker-service/internal/metrics"
	"github.com/glutenpeek/tracker-service/internal/transport/http/handlers"
	authmw "github.com/glutenpeek/tracker-service/internal/transport/http/middleware"
)

func New(
	tl *handlers.TimelineHandler,
	cat *handlers.CatalogHandler,
	com *handlers.CommunityHandler,
	dir *handlers.DirectoryHandler,
	z *handlers.HealthHandler,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/tracker/v1", func(r chi.Router) {
		// search endpoints are permitted without identity
		r.Get("/products", cat.SearchProducts)
		r.Get("/products/{barcode}", cat.GetProduct)
		r.Get("/posts", com.Feed)
		r.Get("/posts/{post_id}", com.GetPost)
		r.Get("/users", dir.SearchUsers)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/days", tl.Days)
			r.Get("/profile", dir.Profile)
			r.Post("/scans", tl.RecordScan)
			r.Get("/scans", tl.RecentScans)
			r.Post("/symptoms", tl.ReportSymptoms)
			r.Get("/claims", cat.ListClaims)
		})
	})

	return r
}
