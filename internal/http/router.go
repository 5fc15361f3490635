package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/billingfiles/internal/http/invoicefile"
)

type Options struct {
	// JWTSecret enables bearer authentication of the trigger endpoints.
	JWTSecret   string
	CORSOrigins []string
}

func New(opts Options, invoiceFilesV1 *invoicefile.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/{municipalityId}/invoicefiles", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(Authenticate(opts.JWTSecret))
				invoiceFilesV1.TriggerRoutes(r)
			})

			invoiceFilesV1.Routes(r)
		})
	})

	return router
}
