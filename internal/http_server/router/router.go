package router

import (
	"context"
	"log/slog"
	"net/http"

	"careerpath/internal/http_server/handlers/assessment"
	"careerpath/internal/http_server/handlers/jobs"
	"careerpath/internal/http_server/handlers/login"
	"careerpath/internal/http_server/handlers/markettrends"
	"careerpath/internal/http_server/handlers/me"
	"careerpath/internal/http_server/handlers/profile"
	"careerpath/internal/http_server/handlers/recommendations"
	"careerpath/internal/http_server/handlers/signup"
	"careerpath/internal/http_server/middleware/authgate"
	"careerpath/internal/http_server/middleware/ratelimit"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/lib/validate"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type AuthService interface {
	signup.AccountCreator
	login.Authenticator
	me.AccountViewer
}

// CareerStore backs the assessment, recommendation, job and market trend routes.
type CareerStore interface {
	assessment.Store
	recommendations.Store
	jobs.Store
	markettrends.Store
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Log            *slog.Logger
	Auth           AuthService
	Verifier       authgate.Verifier
	Profiles       profile.Store
	Career         CareerStore
	Health         Pinger
	AllowedOrigins []string
}

func New(d Deps) *chi.Mux {
	v := validate.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", health(d.Log, d.Health))

	r.Route("/api", func(r chi.Router) {
		r.With(ratelimit.SignUp()).Post("/auth/signup", signup.New(d.Log, v, d.Auth))
		r.With(ratelimit.Login()).Post("/auth/login", login.New(d.Log, v, d.Auth))

		r.Group(func(r chi.Router) {
			r.Use(authgate.New(d.Log, d.Verifier))

			r.Get("/auth/me", me.New(d.Log, d.Auth))

			r.Get("/profile", profile.NewGet(d.Log, d.Profiles))
			r.Post("/profile", profile.NewCreate(d.Log, v, d.Profiles))
			r.Put("/profile", profile.NewUpdate(d.Log, v, d.Profiles))

			r.Get("/assessment", assessment.NewGet(d.Log, d.Career))
			r.Post("/assessment", assessment.NewCreate(d.Log, v, d.Career))

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", recommendations.NewList(d.Log, d.Career))
				r.Post("/generate", recommendations.NewGenerate(d.Log, d.Career))
				r.Put("/{id}/save", recommendations.NewSave(d.Log, d.Career))
			})

			r.Post("/jobs/search", jobs.NewSearch(d.Log, v))
			r.Get("/jobs/saved", jobs.NewSaved(d.Log, d.Career))
			r.Post("/jobs/save", jobs.NewSave(d.Log, v, d.Career))

			r.Get("/market-trends", markettrends.New(d.Log, d.Career))
		})
	})

	return r
}

func health(log *slog.Logger, p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Ping(r.Context()); err != nil {
			log.Error("health check failed", sl.Err(err))

			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, resp.Error(resp.CodeInternal, "storage unavailable"))

			return
		}

		render.JSON(w, r, resp.OK())
	}
}
