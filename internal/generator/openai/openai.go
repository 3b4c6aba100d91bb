// Package openai produces coloring-page images through the OpenAI image API.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"coloringbook/internal/config"
)

// promptTemplate wraps the raw user prompt with the coloring-book style
// constraints before it is sent upstream. The catalog itself never sees the
// enhanced text.
const promptTemplate = "Create a children's coloring-book page illustration of: %s.\n" +
	"Style: black ink line art only, pure white background, simple clean outlines, " +
	"vector-like flat 2D, not photorealistic.\n" +
	"Coloring-book constraints: no shading, no hatching, no stippling, no gradients, " +
	"no gray, no color.\n" +
	"Line quality: smooth continuous strokes, medium-thick consistent line weight, " +
	"closed shapes where appropriate, minimal tiny details (easy to color).\n" +
	"Composition: single page, portrait, centered subject, fills most of the frame, " +
	"clear silhouette, ample white space inside shapes for coloring.\n" +
	"Exclusions: no background scene, no setting props, no table, no frame/border, " +
	"no text, no watermark, no pencils/crayons/hands, no shadows."

type Generator struct {
	log     *slog.Logger
	client  *openai.Client
	cfg     *config.OpenAI
	limiter *rate.Limiter
}

func New(log *slog.Logger, cfg *config.OpenAI) *Generator {
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 1
	}

	return &Generator{
		log:     log,
		client:  openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

// Generate requests a single image for the prompt and returns the raw PNG
// bytes. The call is rate limited against the upstream quota and bounded by
// the configured timeout.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	const op = "generator.openai.Generate"

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	g.log.Info("requesting image generation",
		slog.String("op", op),
		slog.String("model", g.cfg.Model),
	)

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:   g.cfg.Model,
		Prompt:  fmt.Sprintf(promptTemplate, prompt),
		Size:    g.cfg.Size,
		Quality: g.cfg.Quality,
		N:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("%s: empty image payload in response", op)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%s: decode image payload: %w", op, err)
	}

	return data, nil
}
