package assessment

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

// Request carries the raw answers as a JSON document and an optional summary.
type Request struct {
	AnswersJSON   *string `json:"answers_json" validate:"omitempty,json,max=20000"`
	ResultSummary *string `json:"result_summary" validate:"omitempty,max=2000"`
}

type Response struct {
	resp.Response
	Assessment models.Assessment `json:"assessment"`
}

type Store interface {
	SaveAssessment(ctx context.Context, userID int64, answers, summary *string, now time.Time) (models.Assessment, error)
	LatestAssessment(ctx context.Context, userID int64) (models.Assessment, error)
}

// NewGet returns the caller's most recent assessment.
func NewGet(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assessment.NewGet"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		a, err := store.LatestAssessment(r.Context(), uid)
		if err != nil {
			if errors.Is(err, storage.ErrAssessmentNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error(resp.CodeNotFound, "no assessment found"))

				return
			}

			log.Error("failed to load assessment", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		render.JSON(w, r, Response{Response: resp.OK(), Assessment: a})
	}
}

func NewCreate(log *slog.Logger, validate *validator.Validate, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assessment.NewCreate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		var req Request
		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		a, err := store.SaveAssessment(r.Context(), uid, req.AnswersJSON, req.ResultSummary, time.Now().UTC())
		if err != nil {
			log.Error("failed to save assessment", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		log.Info("Assessment saved", slog.Int64("uid", uid), slog.Int64("id", a.ID))

		render.JSON(w, r, Response{Response: resp.OK(), Assessment: a})
	}
}
