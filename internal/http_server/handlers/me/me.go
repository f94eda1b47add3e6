package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"careerpath/internal/auth"
	"careerpath/internal/http_server/middleware/authgate"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	Account models.PublicAccount `json:"account"`
}

type AccountViewer interface {
	WhoAmI(ctx context.Context, uid int64) (models.PublicAccount, error)
}

func New(log *slog.Logger, viewer AccountViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.me.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := authgate.UserID(r.Context())
		if !ok {
			authgate.Unauthorized(w, r)

			return
		}

		acc, err := viewer.WhoAmI(r.Context(), uid)
		if err != nil {
			if errors.Is(err, auth.ErrAccountNotFound) {
				log.Warn("token subject no longer resolves", slog.Int64("uid", uid))

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error(resp.CodeNotFound, "account not found"))

				return
			}

			log.Error("failed to load account", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Account:  acc,
		})
	}
}
