package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "coloringbook/docs"
	"coloringbook/internal/catalog"
	"coloringbook/internal/config"
	"coloringbook/internal/generator/openai"
	"coloringbook/internal/http-server/handlers/health"
	"coloringbook/internal/http-server/handlers/image/generateImage"
	"coloringbook/internal/http-server/handlers/image/listImages"
	"coloringbook/internal/http-server/handlers/image/searchImages"
	"coloringbook/internal/http-server/middleware/mwlogger"
	"coloringbook/internal/kafka/consumer"
	"coloringbook/internal/kafka/producer"
	"coloringbook/internal/lib/logger/handlers/slogpretty"
	"coloringbook/internal/lib/logger/sl"
	"coloringbook/internal/storage/jsonstore"
	"coloringbook/internal/thumbnail"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// @title        Coloring Book API
// @version      1.0
// @description  API for browsing and generating coloring images
// @BasePath     /
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting coloring book catalog", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	store := jsonstore.New(log, cfg.Storage.ImageDir)
	thumbs := thumbnail.New(log, cfg.Storage.ImageDir, &cfg.Thumbnail)
	imageGen := openai.New(log, &cfg.OpenAI)

	var events catalog.EventPublisher
	var kafkaProducer *producer.Producer
	var kafkaConsumer *consumer.Consumer

	if cfg.Kafka.Enabled {
		var err error

		kafkaProducer, err = producer.NewProducer(&cfg.Kafka, log)
		if err != nil {
			log.Error("failed to create kafka producer", sl.Err(err))
			os.Exit(1)
		}
		events = kafkaProducer

		kafkaConsumer, err = consumer.NewConsumer(&cfg.Kafka, log)
		if err != nil {
			log.Error("failed to create kafka consumer", sl.Err(err))
			os.Exit(1)
		}
	}

	cat := catalog.New(log, &cfg.Storage, store, thumbs, imageGen, events)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	if kafkaConsumer != nil {
		go kafkaConsumer.ReadMessages(consumerCtx, cat.HandleImageEvent)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(log, cat))
		r.Get("/images", listImages.New(log, cat))
		r.Get("/search", searchImages.New(log, cat))
		r.Post("/generate", generateImage.New(log, cat))
	})

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	thumbnailsDir := filepath.Join(cfg.Storage.ImageDir, "thumbnails")
	router.Handle("/thumbnails/*", http.StripPrefix("/thumbnails/", http.FileServer(http.Dir(thumbnailsDir))))
	router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.Storage.ImageDir))))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", sl.Err(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	stopConsumer()

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Error("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			log.Error("failed to close kafka consumer", slog.String("error", err.Error()))
		}
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
