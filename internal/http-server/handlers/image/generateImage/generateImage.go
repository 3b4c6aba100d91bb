package generateImage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"coloringbook/internal/catalog"
	"coloringbook/internal/lib/api/response"
	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/models"
)

type Request struct {
	Prompt string `json:"prompt" validate:"required"`
}

type Response struct {
	response.Response
	Image models.Image `json:"image"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageGenerator
type ImageGenerator interface {
	Ingest(ctx context.Context, prompt string) (*models.Image, error)
}

// Generate creates a new coloring image from a prompt.
// @Summary      Generates a coloring image
// @Description  Generates a coloring page for the prompt and adds it to the catalog
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        request  body      generateImage.Request  true  "Generation prompt"
// @Success      200  {object}  generateImage.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/generate [post]
func New(log *slog.Logger, imageGenerator ImageGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.image.generateImage.New"

		log := log.With(slog.String("op", op))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded")

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		image, err := imageGenerator.Ingest(r.Context(), req.Prompt)
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrEmptyPrompt):
				log.Warn("blank prompt rejected")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("prompt cannot be empty"))
			case errors.Is(err, catalog.ErrGeneration):
				log.Error("image generation failed", sl.Err(err))
				render.Status(r, http.StatusBadGateway)
				render.JSON(w, r, response.Error("failed to generate image"))
			default:
				log.Error("failed to ingest image", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to save image"))
			}
			return
		}

		log.Info("image generated", slog.String("id", image.ID))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Image:    *image,
		})
	}
}
