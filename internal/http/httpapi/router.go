package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"crowdfund/internal/http/handlers"
	"crowdfund/internal/middleware"
)

// Options carries the router settings taken from configuration.
type Options struct {
	JWTSecret       string
	DefaultLocale   string
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middlewares dasar
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.RateLimit(opts.RateLimitPerMin, time.Minute, app.RateLimited),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/stats", app.StatsSummary)
		r.Get("/events", app.EventsList)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", app.ProjectsList)
			r.Get("/{id}", app.ProjectGet)
			r.Get("/{id}/donors", app.ProjectDonors)
			r.Get("/{id}/contributions/{donor}", app.ProjectContribution)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(opts.JWTSecret, app.Unauthorized))
				r.Post("/", app.ProjectsCreate)
				r.Post("/{id}/donations", app.DonationsCreate)
				r.Post("/{id}/close", app.ProjectClose)
				r.Post("/{id}/withdraw", app.ProjectWithdraw)
				r.Post("/{id}/refund", app.ProjectRefund)
			})
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret, app.Unauthorized))
			r.Get("/me", app.RewardsMe)
			r.Post("/claim", app.RewardsClaim)
		})
	})

	return r
}
