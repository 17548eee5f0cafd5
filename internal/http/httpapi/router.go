package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"charityfund/internal/http/handlers"
	"charityfund/internal/middleware"
)

// Options carries the router's configuration.
type Options struct {
	JWTSecret       string
	RateLimitPerMin int
	AllowedOrigins  []string
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	// Base middleware
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.AuthJWT(opts.JWTSecret),
	)

	r.Get("/v1/healthz", app.Health)
	r.With(middleware.RateLimit(rateLimit(opts.RateLimitPerMin), time.Minute)).Post("/auth/jwt/login", app.AuthLogin)

	r.Route("/charity_project", func(r chi.Router) {
		r.Get("/", app.ProjectsList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperuser)
			r.Post("/", app.ProjectsCreate)
			r.Patch("/{projectID}", app.ProjectsUpdate)
			r.Delete("/{projectID}", app.ProjectsDelete)
		})
	})

	r.Route("/donation", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/my", app.DonationsMine)
		r.With(middleware.RateLimit(rateLimit(opts.RateLimitPerMin), time.Minute)).Post("/", app.DonationsCreate)
		r.With(middleware.RequireSuperuser).Get("/", app.DonationsList)
	})

	return r
}

func rateLimit(perMin int) int {
	if perMin <= 0 {
		return 30
	}
	return perMin
}
