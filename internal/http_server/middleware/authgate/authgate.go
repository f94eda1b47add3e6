package authgate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Verifier interface {
	Verify(token string) (models.Identity, error)
}

type ctxKey struct{}

// New rejects every request without a valid bearer token before it reaches
// the wrapped handler. The verified subject id is stored in the request context.
func New(log *slog.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.authgate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Info("authorization header rejected", sl.Err(err))

				Unauthorized(w, r)

				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				log.Info("token rejected", sl.Err(err))

				Unauthorized(w, r)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), identity.UserID)))
		})
	}
}

func WithUserID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, uid)
}

// UserID returns the verified subject id. ok is false when the gate did not run
// or stored something that is not a positive id.
func UserID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(ctxKey{}).(int64)
	if !ok || uid <= 0 {
		return 0, false
	}

	return uid, true
}

// Unauthorized writes the generic 401 body. The rejection reason is never exposed.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="careerpath"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, resp.Error(resp.CodeUnauthorized, "unauthorized"))
}

func BearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
