package thumbnail_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"coloringbook/internal/config"
	"coloringbook/internal/thumbnail"
)

func newTestCache(t *testing.T) (*thumbnail.Cache, string) {
	t.Helper()

	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))
	dir := t.TempDir()

	return thumbnail.New(log, dir, &config.Thumbnail{MaxSize: 400, Workers: 2}), dir
}

// writePNG writes a w×h image filled with fill to dir/name.
func writePNG(t *testing.T, dir, name string, w, h int, fill color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	return path
}

func TestEnsureSkipsPDF(t *testing.T) {
	cache, dir := newTestCache(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "booklet.pdf"), []byte("%PDF-1.4"), 0o644))

	url, ok := cache.Ensure(context.Background(), "booklet.pdf")
	require.False(t, ok)
	require.Empty(t, url)
	require.NoFileExists(t, filepath.Join(dir, "thumbnails", "booklet.pdf"))
}

func TestEnsureGeneratesAndFits(t *testing.T) {
	cache, dir := newTestCache(t)

	writePNG(t, dir, "big.png", 800, 600, color.White)

	url, ok := cache.Ensure(context.Background(), "big.png")
	require.True(t, ok)
	require.Equal(t, "/thumbnails/big.png", url)

	f, err := os.Open(filepath.Join(dir, "thumbnails", "big.png"))
	require.NoError(t, err)
	defer f.Close()

	thumb, err := png.Decode(f)
	require.NoError(t, err)
	require.LessOrEqual(t, thumb.Bounds().Dx(), 400)
	require.LessOrEqual(t, thumb.Bounds().Dy(), 400)

	// Aspect ratio of 800×600 preserved inside the box.
	require.Equal(t, 400, thumb.Bounds().Dx())
	require.Equal(t, 300, thumb.Bounds().Dy())
}

func TestEnsureReusesFreshThumbnail(t *testing.T) {
	cache, dir := newTestCache(t)

	writePNG(t, dir, "pic.png", 500, 500, color.White)

	_, ok := cache.Ensure(context.Background(), "pic.png")
	require.True(t, ok)

	thumbPath := filepath.Join(dir, "thumbnails", "pic.png")

	// Plant sentinel bytes and mark the artifact newer than the source; a
	// fresh thumbnail must be reused without a re-encode.
	require.NoError(t, os.WriteFile(thumbPath, []byte("sentinel"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(thumbPath, future, future))

	url, ok := cache.Ensure(context.Background(), "pic.png")
	require.True(t, ok)
	require.Equal(t, "/thumbnails/pic.png", url)

	data, err := os.ReadFile(thumbPath)
	require.NoError(t, err)
	require.Equal(t, []byte("sentinel"), data)
}

func TestEnsureRegeneratesStaleThumbnail(t *testing.T) {
	cache, dir := newTestCache(t)

	writePNG(t, dir, "pic.png", 500, 500, color.White)

	_, ok := cache.Ensure(context.Background(), "pic.png")
	require.True(t, ok)

	thumbPath := filepath.Join(dir, "thumbnails", "pic.png")

	// Mark the artifact strictly older than the source.
	require.NoError(t, os.WriteFile(thumbPath, []byte("stale"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(thumbPath, past, past))

	_, ok = cache.Ensure(context.Background(), "pic.png")
	require.True(t, ok)

	f, err := os.Open(thumbPath)
	require.NoError(t, err)
	defer f.Close()

	_, err = png.Decode(f)
	require.NoError(t, err, "stale artifact should have been replaced by a valid PNG")
}

func TestEnsureUndecodableSource(t *testing.T) {
	cache, dir := newTestCache(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644))

	url, ok := cache.Ensure(context.Background(), "broken.png")
	require.False(t, ok)
	require.Empty(t, url)
}

func TestEnsureMissingSource(t *testing.T) {
	cache, _ := newTestCache(t)

	_, ok := cache.Ensure(context.Background(), "ghost.png")
	require.False(t, ok)
}

func TestEnsureFlattensTransparency(t *testing.T) {
	cache, dir := newTestCache(t)

	// Fully transparent source: every thumbnail pixel must come out as the
	// opaque white canvas.
	writePNG(t, dir, "clear.png", 100, 100, color.NRGBA{R: 255, G: 0, B: 0, A: 0})

	_, ok := cache.Ensure(context.Background(), "clear.png")
	require.True(t, ok)

	f, err := os.Open(filepath.Join(dir, "thumbnails", "clear.png"))
	require.NoError(t, err)
	defer f.Close()

	thumb, err := png.Decode(f)
	require.NoError(t, err)

	r, g, b, a := thumb.At(thumb.Bounds().Dx()/2, thumb.Bounds().Dy()/2).RGBA()
	require.Equal(t, uint32(0xffff), a)
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0xffff), g)
	require.Equal(t, uint32(0xffff), b)
}

func TestEnsureEncodesArtifactsAsPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}

	// The artifact keeps the source's filename, extension included; the
	// bytes behind it must still be PNG no matter what format came in.
	cases := []struct {
		name   string
		encode func(w io.Writer, img image.Image) error
	}{
		{
			name: "photo.jpg",
			encode: func(w io.Writer, img image.Image) error {
				return jpeg.Encode(w, img, nil)
			},
		},
		{
			name: "photo.jpeg",
			encode: func(w io.Writer, img image.Image) error {
				return jpeg.Encode(w, img, nil)
			},
		},
		{
			name: "frame.gif",
			encode: func(w io.Writer, img image.Image) error {
				return gif.Encode(w, img, nil)
			},
		},
		{
			name: "scan.bmp",
			encode: bmp.Encode,
		},
		{
			name: "plate.tiff",
			encode: func(w io.Writer, img image.Image) error {
				return tiff.Encode(w, img, nil)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cache, dir := newTestCache(t)

			f, err := os.Create(filepath.Join(dir, tc.name))
			require.NoError(t, err)
			require.NoError(t, tc.encode(f, src))
			require.NoError(t, f.Close())

			publicPath, ok := cache.Ensure(context.Background(), tc.name)
			require.True(t, ok)
			require.Equal(t, "/thumbnails/"+tc.name, publicPath)

			tf, err := os.Open(filepath.Join(dir, "thumbnails", tc.name))
			require.NoError(t, err)
			defer tf.Close()

			_, format, err := image.Decode(tf)
			require.NoError(t, err)
			require.Equal(t, "png", format)
		})
	}
}
