package request

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Decode reads the JSON body into dst and validates it. On failure the 400
// response is already written and ok is false. An empty body decodes to the
// zero value when allowEmpty is set.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate, dst any, allowEmpty bool) bool {
	err := render.DecodeJSON(r.Body, dst)
	if err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		log.Error("Failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Error(resp.CodeValidation, "failed to decode request"))

		return false
	}

	if err := v.Struct(dst); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)

		log.Info("Invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.ValidationError(validateErr))

		return false
	}

	return true
}
