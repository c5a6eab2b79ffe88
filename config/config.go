package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide configuration, parsed from environment
// variables. A .env file, if present, is loaded by main before parsing.
type Config struct {
	Port string `env:"PORT" envDefault:"8000"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"restaurant_directory"`

	JWTSecret  string        `env:"JWT_SECRET,required"`
	JWTExpires time.Duration `env:"JWT_EXPIRES" envDefault:"24h"`

	AWSRegion string `env:"AWS_REGION" envDefault:"eu-central-1"`
	S3Bucket  string `env:"S3_BUCKET"`

	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`

	PostmarkAPIToken string `env:"POSTMARK_API_TOKEN"`
	EmailSender      string `env:"EMAIL_SENDER"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
