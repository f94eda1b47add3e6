package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"careerpath/internal/auth"
	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	resp.Response
	Token   string               `json:"token"`
	Account models.PublicAccount `json:"account"`
}

type Authenticator interface {
	Login(ctx context.Context, email, pass string) (auth.Session, error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authenticator Authenticator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error(resp.CodeValidation, "failed to decode request"))

			return
		}

		if err := validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Info("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		sess, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error(resp.CodeInvalidCredentials, "invalid email or password"))

				return
			}

			log.Error("failed to login", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		log.Info("Logged in successfully", slog.Int64("uid", sess.Account.ID))

		ResponseOK(w, r, sess)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	render.JSON(w, r, Response{
		Response: resp.OK(),
		Token:    sess.Token,
		Account:  sess.Account,
	})
}
