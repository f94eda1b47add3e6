package recommendations

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"careerpath/internal/career"
	"careerpath/internal/http_server/middleware/authgate"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"
	"careerpath/internal/storage"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type ListResponse struct {
	resp.Response
	Recommendations []models.Recommendation `json:"recommendations"`
}

type Response struct {
	resp.Response
	Recommendation models.Recommendation `json:"recommendation"`
}

type Store interface {
	ReplaceRecommendations(ctx context.Context, userID int64, drafts []models.Recommendation, now time.Time) ([]models.Recommendation, error)
	Recommendations(ctx context.Context, userID int64) ([]models.Recommendation, error)
	SetRecommendationSaved(ctx context.Context, userID, id int64, saved bool) (models.Recommendation, error)
}

// NewGenerate replaces the caller's list with a fresh, unsaved one.
func NewGenerate(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recommendations.NewGenerate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		list, err := store.ReplaceRecommendations(r.Context(), uid, career.Recommendations(uid), time.Now().UTC())
		if err != nil {
			log.Error("failed to generate recommendations", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		log.Info("Recommendations generated", slog.Int64("uid", uid), slog.Int("count", len(list)))

		render.JSON(w, r, ListResponse{Response: resp.OK(), Recommendations: list})
	}
}

func NewList(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recommendations.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		list, err := store.Recommendations(r.Context(), uid)
		if err != nil {
			log.Error("failed to list recommendations", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		if list == nil {
			list = []models.Recommendation{}
		}

		render.JSON(w, r, ListResponse{Response: resp.OK(), Recommendations: list})
	}
}

// NewSave serves PUT /{id}/save?saved=true|false. A missing saved parameter
// means false.
func NewSave(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recommendations.NewSave"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error(resp.CodeValidation, "invalid recommendation id"))

			return
		}

		saved := false
		if raw := r.URL.Query().Get("saved"); raw != "" {
			saved, err = strconv.ParseBool(raw)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(resp.CodeValidation, "saved must be true or false"))

				return
			}
		}

		rec, err := store.SetRecommendationSaved(r.Context(), uid, id, saved)
		if err != nil {
			if errors.Is(err, storage.ErrRecommendationNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error(resp.CodeNotFound, "recommendation not found"))

				return
			}

			log.Error("failed to update recommendation", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		render.JSON(w, r, Response{Response: resp.OK(), Recommendation: rec})
	}
}
