package listImages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"coloringbook/internal/lib/api/response"
	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/models"
)

type Response struct {
	response.Response
	Images []models.Image `json:"images"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageLister
type ImageLister interface {
	List(ctx context.Context) ([]models.Image, error)
}

// List returns all visible coloring images.
// @Summary      Lists coloring images
// @Description  Returns every catalog image whose file exists, newest first
// @Tags         images
// @Produce      json
// @Success      200  {object}  listImages.Response
// @Failure      500  {object}  response.Response
// @Router       /api/images [get]
func New(log *slog.Logger, imageLister ImageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.image.listImages.New"

		log := log.With(slog.String("op", op))

		images, err := imageLister.List(r.Context())
		if err != nil {
			log.Error("failed to list images", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list images"))
			return
		}

		log.Info("images listed", slog.Int("count", len(images)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Images:   images,
		})
	}
}
