package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"offr-io/go_backend/internal/app/config"
	"offr-io/go_backend/internal/app/http/handlers"
	"offr-io/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Post("/quotes/generate", h.GenerateQuote)
		r.Post("/quotes/pdf", h.QuotePDF)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Owner)

			r.Get("/quotes", h.ListQuotes)
			r.Post("/quotes", h.CreateQuote)
			r.Get("/quotes/{id}", h.GetQuote)
			r.Put("/quotes/{id}", h.ReplaceQuote)
			r.Delete("/quotes/{id}", h.DeleteQuote)
			r.Get("/quotes/{id}/pdf", h.StoredQuotePDF)
		})
	})

	return r
}
