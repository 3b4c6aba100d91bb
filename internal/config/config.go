package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// productionImageDir is preferred when it exists, matching the layout of the
// deployed service. Otherwise COLORINGBOOK_IMAGES_DIR and finally ./images.
const productionImageDir = "/var/lib/coloringbook/images"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    Storage   `yaml:"storage"`
	Thumbnail  Thumbnail `yaml:"thumbnail"`
	OpenAI     OpenAI    `yaml:"openai"`
	Kafka      Kafka     `yaml:"kafka"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"180s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	// ImageDir is the catalog root: flat image files, a thumbnails/
	// subdirectory and the metadata document.
	ImageDir   string   `yaml:"image_dir" env:"COLORINGBOOK_IMAGES_DIR"`
	Extensions []string `yaml:"extensions" env-default:".png,.jpg,.jpeg,.gif,.webp,.pdf"`
}

type Thumbnail struct {
	MaxSize int `yaml:"max_size" env-default:"400"`
	Workers int `yaml:"workers" env-default:"4"`
}

type OpenAI struct {
	// The API key is read from OPENAI_API_KEY only, never from the config file.
	Model             string        `yaml:"model" env-default:"gpt-image-1"`
	Size              string        `yaml:"size" env-default:"1024x1024"`
	Quality           string        `yaml:"quality" env-default:"low"`
	Timeout           time.Duration `yaml:"timeout" env-default:"120s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env-default:"5"`
}

type Kafka struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env-default:"coloringbook.images"`
	GroupID string   `yaml:"group_id" env-default:"coloringbook-thumbnails"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yaml"
	}

	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err = cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config %s: %s", configPath, err)
		}
	} else {
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	if cfg.Storage.ImageDir == "" {
		if _, err := os.Stat(productionImageDir); err == nil {
			cfg.Storage.ImageDir = productionImageDir
		} else {
			cfg.Storage.ImageDir = "./images"
		}
	}

	return &cfg
}
