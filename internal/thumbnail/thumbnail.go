// Package thumbnail maintains an on-demand preview cache next to the catalog
// images. A cached artifact is keyed by the source filename and invalidated by
// comparing modification times.
package thumbnail

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	// webp can only be decoded; cached artifacts are always encoded as PNG.
	_ "golang.org/x/image/webp"

	"coloringbook/internal/config"
	"coloringbook/internal/lib/logger/sl"
)

const thumbnailsSubdir = "thumbnails"

// PublicPrefix is the route prefix thumbnails are served under.
const PublicPrefix = "/thumbnails/"

type Cache struct {
	log      *slog.Logger
	imageDir string
	thumbDir string
	maxSize  int

	// sem bounds concurrent derivations; group collapses concurrent requests
	// for the same source file into a single in-flight derivation.
	sem   chan struct{}
	group singleflight.Group
}

func New(log *slog.Logger, imageDir string, cfg *config.Thumbnail) *Cache {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	maxSize := cfg.MaxSize
	if maxSize < 1 {
		maxSize = 400
	}

	return &Cache{
		log:      log,
		imageDir: imageDir,
		thumbDir: filepath.Join(imageDir, thumbnailsSubdir),
		maxSize:  maxSize,
		sem:      make(chan struct{}, workers),
	}
}

// Ensure returns the public path of an up-to-date thumbnail for the named
// source image, deriving one if the cached artifact is missing or older than
// the source. ok is false when no thumbnail can be produced: document formats
// are skipped and decode/encode failures are logged and swallowed, so callers
// degrade to "no preview" instead of failing their own operation.
func (c *Cache) Ensure(ctx context.Context, filename string) (publicPath string, ok bool) {
	const op = "thumbnail.Ensure"

	log := c.log.With(slog.String("op", op), slog.String("filename", filename))

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "", false
	}

	srcPath := filepath.Join(c.imageDir, filename)
	thumbPath := filepath.Join(c.thumbDir, filename)

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		log.Warn("cannot stat source image", sl.Err(err))
		return "", false
	}

	if thumbInfo, err := os.Stat(thumbPath); err == nil {
		if !thumbInfo.ModTime().Before(srcInfo.ModTime()) {
			return PublicPrefix + filename, true
		}
	}

	_, err, _ = c.group.Do(filename, func() (interface{}, error) {
		select {
		case c.sem <- struct{}{}:
			defer func() { <-c.sem }()
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		return nil, c.derive(srcPath, thumbPath)
	})
	if err != nil {
		log.Warn("failed to generate thumbnail", sl.Err(err))
		return "", false
	}

	return PublicPrefix + filename, true
}

// derive decodes the source, flattens any transparency onto white, fits the
// result into the bounding box and writes it as an optimized PNG.
func (c *Cache) derive(srcPath, thumbPath string) error {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}

	src = flatten(src)

	thumb := imaging.Fit(src, c.maxSize, c.maxSize, imaging.Lanczos)

	if err = os.MkdirAll(c.thumbDir, 0o755); err != nil {
		return err
	}

	// The artifact keeps the source's filename, so imaging.Save would pick
	// the encoder from its extension; encode explicitly to stay PNG for
	// every source format.
	f, err := os.Create(thumbPath)
	if err != nil {
		return err
	}

	if err = imaging.Encode(f, thumb, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		f.Close()
		os.Remove(thumbPath)
		return err
	}

	return f.Close()
}

// flatten composites images that carry an alpha channel or a palette onto an
// opaque white canvas of the same dimensions, using the alpha as the mask.
// Fully opaque images pass through unchanged; imaging coerces them to an
// opaque color model during resize.
func flatten(src image.Image) image.Image {
	switch src.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.Paletted:
		bounds := src.Bounds()
		canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
		return imaging.Overlay(canvas, src, image.Pt(0, 0), 1.0)
	default:
		return src
	}
}
