package signup

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
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

type Response struct {
	resp.Response
	Token   string               `json:"token"`
	Account models.PublicAccount `json:"account"`
}

type AccountCreator interface {
	SignUp(ctx context.Context, name, email, pass string) (auth.Session, error)
}

// New godoc
// @Summary      Sign up
// @Description  Creates an account and returns its first identity token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body Request true "name, email, password"
// @Success      200 {object} Response
// @Failure      400 {object} resp.Response "validation_error or duplicate_email"
// @Failure      500 {object} resp.Response
// @Router       /api/auth/signup [post]
func New(
	log *slog.Logger,
	validate *validator.Validate,
	creator AccountCreator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.signup.New"

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

		sess, err := creator.SignUp(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrDuplicateEmail) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(resp.CodeDuplicateEmail, "email already registered"))

				return
			}
			if errors.Is(err, auth.ErrInvalidPassword) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(resp.CodeValidation, "password is too long"))

				return
			}

			log.Error("failed to sign up", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		log.Info("Account created", slog.Int64("uid", sess.Account.ID))

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
