// Package catalog implements the coloring-page catalog: reconciliation of
// on-disk images into the metadata document, ordered and searchable views
// over it, and the ingest pipeline for newly generated pages.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coloringbook/internal/config"
	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/lib/slug"
	"coloringbook/internal/models"
	"coloringbook/internal/storage/jsonstore"
)

// ImagesPrefix is the route prefix originals are served under.
const ImagesPrefix = "/images/"

// EventImageCreated announces a record appended by ingest or reconciliation.
const EventImageCreated = "image.created"

var (
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	ErrEmptyQuery  = errors.New("search query cannot be empty")
	ErrGeneration  = errors.New("image generation failed")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Generator
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventPublisher
type EventPublisher interface {
	PublishImageCreated(ctx context.Context, event ImageEvent) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Thumbnailer
type Thumbnailer interface {
	Ensure(ctx context.Context, filename string) (publicPath string, ok bool)
}

// ImageEvent is the payload published to the catalog event stream.
type ImageEvent struct {
	Event    string `json:"event"`
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

type Catalog struct {
	log        *slog.Logger
	cfg        *config.Storage
	store      *jsonstore.Store
	thumbs     Thumbnailer
	generator  Generator
	events     EventPublisher
	extensions map[string]struct{}
}

// New wires the catalog. events may be nil when the event stream is disabled.
func New(
	log *slog.Logger,
	cfg *config.Storage,
	store *jsonstore.Store,
	thumbs Thumbnailer,
	generator Generator,
	events EventPublisher,
) *Catalog {
	extensions := make(map[string]struct{}, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	return &Catalog{
		log:        log,
		cfg:        cfg,
		store:      store,
		thumbs:     thumbs,
		generator:  generator,
		events:     events,
		extensions: extensions,
	}
}

// Reconcile folds image files not yet tracked by the metadata document into
// it: legacy files and anything written out of band. Existing records are
// never edited and the document is rewritten only when at least one record
// was added, so a second run over an unchanged directory is a no-op.
func (c *Catalog) Reconcile(ctx context.Context) (map[string]models.Meta, error) {
	const op = "catalog.Reconcile"

	var added []ImageEvent

	metadata, err := c.store.Update(func(m map[string]models.Meta) (bool, error) {
		entries, err := os.ReadDir(c.cfg.ImageDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, fmt.Errorf("%s: %w", op, err)
		}

		changed := false

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			name := entry.Name()
			if _, ok := c.extensions[strings.ToLower(filepath.Ext(name))]; !ok {
				continue
			}

			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if _, ok := m[stem]; ok {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				c.log.Warn("skipping unreadable directory entry",
					slog.String("op", op), slog.String("filename", name), sl.Err(err))
				continue
			}

			// The true prompt is unknown for discovered files; the derived
			// title doubles as a best-effort placeholder.
			title := deriveTitle(strings.NewReplacer("-", " ", "_", " ").Replace(stem))

			m[stem] = models.Meta{
				Filename: name,
				Title:    title,
				Prompt:   title,
				Created:  info.ModTime().UTC().Format(time.RFC3339),
			}

			added = append(added, ImageEvent{
				Event:    EventImageCreated,
				ID:       stem,
				Filename: name,
				Source:   "reconcile",
			})
			changed = true
		}

		return changed, nil
	})
	if err != nil {
		return nil, err
	}

	if len(added) > 0 {
		c.log.Info("reconciled untracked images", slog.String("op", op), slog.Int("added", len(added)))
		for _, ev := range added {
			c.publish(ctx, ev)
		}
	}

	return metadata, nil
}

// List reconciles the image directory and returns views of every record whose
// file still exists, newest first.
func (c *Catalog) List(ctx context.Context) ([]models.Image, error) {
	metadata, err := c.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	images := c.buildViews(ctx, metadata, func(models.Meta) bool { return true })
	sortNewestFirst(images)

	return images, nil
}

// Search returns views of records whose prompt or title contains the query,
// case-insensitively, together with the match count. A blank query is
// rejected before any I/O.
func (c *Catalog) Search(ctx context.Context, query string) ([]models.Image, int, error) {
	const op = "catalog.Search"

	if strings.TrimSpace(query) == "" {
		return nil, 0, ErrEmptyQuery
	}

	metadata, err := c.store.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	needle := strings.ToLower(query)

	images := c.buildViews(ctx, metadata, func(meta models.Meta) bool {
		return strings.Contains(strings.ToLower(meta.Prompt), needle) ||
			strings.Contains(strings.ToLower(meta.Title), needle)
	})
	sortNewestFirst(images)

	return images, len(images), nil
}

// Ingest generates an image for the prompt, stores it under a unique slug
// filename, derives its thumbnail and appends the record to the metadata
// document. Generation failures abort with no filesystem or metadata side
// effects; the file write and thumbnail derivation both happen before the
// record is registered, so a crash mid-ingest leaves at worst an untracked
// file for the next reconciliation to fold in.
func (c *Catalog) Ingest(ctx context.Context, prompt string) (*models.Image, error) {
	const op = "catalog.Ingest"

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	data, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrGeneration, err)
	}

	title := deriveTitle(prompt)
	created := time.Now().UTC().Format(time.RFC3339)

	var id, filename string

	// Claim the filename and write the image under the document lock so a
	// concurrent ingest cannot pick the same stem, but defer the record
	// merge so the thumbnail is derived first.
	_, err = c.store.Update(func(m map[string]models.Meta) (bool, error) {
		id = c.uniqueStem(m, prompt)
		filename = id + ".png"

		if err := os.MkdirAll(c.cfg.ImageDir, 0o755); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if err := os.WriteFile(filepath.Join(c.cfg.ImageDir, filename), data, 0o644); err != nil {
			return false, fmt.Errorf("%s: write image: %w", op, err)
		}

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	thumbURL, hasThumb := c.thumbs.Ensure(ctx, filename)

	_, err = c.store.Update(func(m map[string]models.Meta) (bool, error) {
		m[id] = models.Meta{
			Filename: filename,
			Title:    title,
			Prompt:   prompt,
			Created:  created,
		}

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	image := models.Image{
		ID:       id,
		Filename: filename,
		Title:    title,
		Prompt:   prompt,
		URL:      ImagesPrefix + filename,
		Created:  created,
	}
	if hasThumb {
		image.ThumbnailURL = thumbURL
	}

	c.publish(ctx, ImageEvent{
		Event:    EventImageCreated,
		ID:       id,
		Filename: filename,
		Source:   "ingest",
	})

	c.log.Info("image ingested", slog.String("op", op), slog.String("id", id))

	return &image, nil
}

// Count reports the total number of records in the metadata document,
// including records whose file has gone missing.
func (c *Catalog) Count(context.Context) (int, error) {
	metadata, err := c.store.Load()
	if err != nil {
		return 0, err
	}

	return len(metadata), nil
}

// HandleImageEvent consumes a catalog event from the stream and warms the
// thumbnail cache for the announced file. Unknown events are ignored.
func (c *Catalog) HandleImageEvent(ctx context.Context, message []byte) error {
	const op = "catalog.HandleImageEvent"

	var ev ImageEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if ev.Event != EventImageCreated || ev.Filename == "" {
		return nil
	}

	c.thumbs.Ensure(ctx, ev.Filename)

	return nil
}

// buildViews materializes records passing match into API views, dropping any
// record whose file no longer exists on disk. Such orphan records stay in the
// document untouched.
func (c *Catalog) buildViews(ctx context.Context, metadata map[string]models.Meta, match func(models.Meta) bool) []models.Image {
	images := make([]models.Image, 0, len(metadata))

	for id, meta := range metadata {
		if !match(meta) {
			continue
		}
		if _, err := os.Stat(filepath.Join(c.cfg.ImageDir, meta.Filename)); err != nil {
			continue
		}

		image := models.Image{
			ID:       id,
			Filename: meta.Filename,
			Title:    meta.Title,
			Prompt:   meta.Prompt,
			URL:      ImagesPrefix + meta.Filename,
			Created:  meta.Created,
		}
		if thumbURL, ok := c.thumbs.Ensure(ctx, meta.Filename); ok {
			image.ThumbnailURL = thumbURL
		}

		images = append(images, image)
	}

	return images
}

// uniqueStem derives the id and file stem for a new record: the prompt's slug,
// suffixed -1, -2, … until it collides with neither a mapping key nor an
// existing file. Prompts that slug to nothing fall back to a random hex token.
func (c *Catalog) uniqueStem(metadata map[string]models.Meta, prompt string) string {
	base := slug.Make(prompt)
	if base == "" {
		base = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}

	stem := base
	for i := 1; c.stemTaken(metadata, stem); i++ {
		stem = fmt.Sprintf("%s-%d", base, i)
	}

	return stem
}

func (c *Catalog) stemTaken(metadata map[string]models.Meta, stem string) bool {
	if _, ok := metadata[stem]; ok {
		return true
	}
	_, err := os.Stat(filepath.Join(c.cfg.ImageDir, stem+".png"))
	return err == nil
}

func (c *Catalog) publish(ctx context.Context, ev ImageEvent) {
	if c.events == nil {
		return
	}
	if err := c.events.PublishImageCreated(ctx, ev); err != nil {
		c.log.Warn("failed to publish catalog event",
			slog.String("event", ev.Event), slog.String("id", ev.ID), sl.Err(err))
	}
}

func deriveTitle(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// sortNewestFirst orders by the created timestamp descending; RFC3339 strings
// compare correctly as plain strings and records without a timestamp sort
// last. Ties break on id so output is deterministic.
func sortNewestFirst(images []models.Image) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Created != images[j].Created {
			return images[i].Created > images[j].Created
		}
		return images[i].ID < images[j].ID
	})
}
