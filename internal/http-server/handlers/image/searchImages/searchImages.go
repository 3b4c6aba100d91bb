package searchImages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"coloringbook/internal/catalog"
	"coloringbook/internal/lib/api/response"
	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/models"
)

type Response struct {
	response.Response
	Images []models.Image `json:"images"`
	Query  string         `json:"query"`
	Total  int            `json:"total"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageSearcher
type ImageSearcher interface {
	Search(ctx context.Context, query string) ([]models.Image, int, error)
}

// Search finds coloring images by prompt or title.
// @Summary      Searches coloring images
// @Description  Case-insensitive substring match against prompt or title
// @Tags         images
// @Produce      json
// @Param        q    query     string  true  "Search query"
// @Success      200  {object}  searchImages.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/search [get]
func New(log *slog.Logger, imageSearcher ImageSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.image.searchImages.New"

		log := log.With(slog.String("op", op))

		query := r.URL.Query().Get("q")

		images, total, err := imageSearcher.Search(r.Context(), query)
		if err != nil {
			if errors.Is(err, catalog.ErrEmptyQuery) {
				log.Warn("empty search query rejected")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("search query cannot be empty"))
				return
			}

			log.Error("failed to search images", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to search images"))
			return
		}

		log.Info("search completed", slog.String("query", query), slog.Int("total", total))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Images:   images,
			Query:    query,
			Total:    total,
		})
	}
}
