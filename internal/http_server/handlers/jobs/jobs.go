package jobs

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/career"
	"careerpath/internal/http_server/middleware/authgate"
	"careerpath/internal/lib/api/request"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type SearchRequest struct {
	Query    string `json:"query" validate:"max=200"`
	Location string `json:"location" validate:"max=200"`
	Category string `json:"category" validate:"max=100"`
}

type SaveRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Company     *string `json:"company" validate:"omitempty,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	URL         *string `json:"url" validate:"omitempty,url,max=2000"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type ListResponse struct {
	resp.Response
	Jobs []models.Job `json:"jobs"`
}

type Response struct {
	resp.Response
	Job models.Job `json:"job"`
}

type Store interface {
	SaveJob(ctx context.Context, userID int64, job models.Job) (models.Job, error)
	SavedJobs(ctx context.Context, userID int64) ([]models.Job, error)
}

// NewSearch filters the job catalog. An empty body returns every job.
func NewSearch(log *slog.Logger, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.jobs.NewSearch"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if _, ok := authgate.UserID(r.Context()); !ok {
			authgate.Unauthorized(w, r)

			return
		}

		var req SearchRequest
		if !request.Decode(w, r, log, validate, &req, true) {
			return
		}

		found := career.SearchJobs(career.JobQuery{
			Query:    req.Query,
			Location: req.Location,
			Category: req.Category,
		}, time.Now().UTC())

		render.JSON(w, r, ListResponse{Response: resp.OK(), Jobs: found})
	}
}

func NewSaved(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.jobs.NewSaved"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		list, err := store.SavedJobs(r.Context(), uid)
		if err != nil {
			log.Error("failed to list saved jobs", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		if list == nil {
			list = []models.Job{}
		}

		render.JSON(w, r, ListResponse{Response: resp.OK(), Jobs: list})
	}
}

func NewSave(log *slog.Logger, validate *validator.Validate, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.jobs.NewSave"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		var req SaveRequest
		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		job, err := store.SaveJob(r.Context(), uid, models.Job{
			Title:       strings.TrimSpace(req.Title),
			Company:     req.Company,
			Location:    req.Location,
			URL:         req.URL,
			Description: req.Description,
			SavedAt:     time.Now().UTC(),
		})
		if err != nil {
			log.Error("failed to save job", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		log.Info("Job saved", slog.Int64("uid", uid), slog.Int64("id", job.ID))

		render.JSON(w, r, Response{Response: resp.OK(), Job: job})
	}
}
