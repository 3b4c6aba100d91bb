package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"coloringbook/internal/lib/api/response"
	"coloringbook/internal/lib/logger/sl"
)

// Response deliberately reports the total record count, orphan records
// included, so the number is stable regardless of out-of-band file removal.
type Response struct {
	Status      string `json:"status"`
	ImagesCount int    `json:"images_count"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageCounter
type ImageCounter interface {
	Count(ctx context.Context) (int, error)
}

// Check reports service health.
// @Summary      Health check
// @Description  Reports service status and the total catalog record count
// @Tags         health
// @Produce      json
// @Success      200  {object}  health.Response
// @Failure      500  {object}  response.Response
// @Router       /api/health [get]
func New(log *slog.Logger, imageCounter ImageCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		count, err := imageCounter.Count(r.Context())
		if err != nil {
			log.Error("failed to count images", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read catalog"))
			return
		}

		render.JSON(w, r, Response{
			Status:      "healthy",
			ImagesCount: count,
		})
	}
}
