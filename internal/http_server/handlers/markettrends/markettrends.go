package markettrends

import (
	"context"
	"log/slog"
	"net/http"

	resp "careerpath/internal/lib/api/response"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	Trends []models.MarketTrend `json:"trends"`
}

type Store interface {
	MarketTrends(ctx context.Context) ([]models.MarketTrend, error)
}

// New lists every trend. The data is not per user; the route still sits
// behind the gate.
func New(log *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.markettrends.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		trends, err := store.MarketTrends(r.Context())
		if err != nil {
			log.Error("failed to list market trends", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Internal())

			return
		}

		if trends == nil {
			trends = []models.MarketTrend{}
		}

		render.JSON(w, r, Response{Response: resp.OK(), Trends: trends})
	}
}
