package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Kasa"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// Origin of the web frontend, used for CORS and recovery redirect links.
		WebOrigin string `envconfig:"WEB_ORIGIN" default:"http://localhost:3000"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"kasa"`
	}

	// Platform is the hosted backend that owns auth and object storage.
	Platform struct {
		URL        string `envconfig:"PLATFORM_URL"`
		AnonKey    string `envconfig:"PLATFORM_ANON_KEY"`
		ServiceKey string `envconfig:"PLATFORM_SERVICE_KEY"`
		JWTSecret  string `envconfig:"PLATFORM_JWT_SECRET"`
	}

	Storage struct {
		Bucket string `envconfig:"STORAGE_BUCKET" default:"islem-gorselleri"`
		// Receipt images are compressed client-side; anything bigger is rejected.
		MaxUploadBytes int64 `envconfig:"STORAGE_MAX_UPLOAD_BYTES" default:"2097152"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
