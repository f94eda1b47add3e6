package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"careerpath/internal/http_server/middleware/authgate"
	"careerpath/internal/lib/api/request"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"
	"careerpath/internal/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Skills              *string `json:"skills" validate:"omitempty,max=2000"`
	Interests           *string `json:"interests" validate:"omitempty,max=2000"`
	ExperienceLevel     *string `json:"experience_level" validate:"omitempty,max=100"`
	Education           *string `json:"education" validate:"omitempty,max=500"`
	PreferredIndustries *string `json:"preferred_industries" validate:"omitempty,max=1000"`
}

func (req Request) fields() models.ProfileFields {
	return models.ProfileFields{
		Skills:              req.Skills,
		Interests:           req.Interests,
		ExperienceLevel:     req.ExperienceLevel,
		Education:           req.Education,
		PreferredIndustries: req.PreferredIndustries,
	}
}

type Response struct {
	resp.Response
	Profile models.Profile `json:"profile"`
}

type Store interface {
	Profile(ctx context.Context, userID int64) (models.Profile, error)
	SaveProfile(ctx context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error)
}

func NewGet(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.NewGet"

		log := requestLog(log, r, op)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		p, err := store.Profile(r.Context(), uid)
		if err != nil {
			writeStoreError(w, r, log, err)

			return
		}

		responseOK(w, r, p)
	}
}

func NewCreate(log *slog.Logger, validate *validator.Validate, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.NewCreate"

		log := requestLog(log, r, op)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		var req Request
		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		p, err := store.SaveProfile(r.Context(), uid, req.fields(), time.Now().UTC())
		if err != nil {
			writeStoreError(w, r, log, err)

			return
		}

		log.Info("Profile created", slog.Int64("uid", uid))

		responseOK(w, r, p)
	}
}

func NewUpdate(log *slog.Logger, validate *validator.Validate, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.NewUpdate"

		log := requestLog(log, r, op)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		var req Request
		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		p, err := store.UpdateProfile(r.Context(), uid, req.fields(), time.Now().UTC())
		if err != nil {
			writeStoreError(w, r, log, err)

			return
		}

		responseOK(w, r, p)
	}
}

func requestLog(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrProfileNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Error(resp.CodeNotFound, "profile not found"))
	case errors.Is(err, storage.ErrProfileExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, resp.Error(resp.CodeProfileExists, "profile already exists"))
	default:
		log.Error("profile store failed", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Internal())
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, p models.Profile) {
	render.JSON(w, r, Response{
		Response: resp.OK(),
		Profile:  p,
	})
}
