package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Encoding storage
	EncodingsDir string `envconfig:"ENCODINGS_DIR" default:"face_encodings"`

	// Extractor
	ExtractorType string `envconfig:"EXTRACTOR_TYPE" default:"deepface"`
	ExtractorURL  string `envconfig:"EXTRACTOR_URL" default:"http://localhost:5005"`

	// Matching
	EmbeddingDim   int     `envconfig:"EMBEDDING_DIM" default:"128"`
	MatchTolerance float64 `envconfig:"MATCH_TOLERANCE" default:"0.6"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only surface as matcher errors at
// request time. Done once at boot.
func (c *Config) Validate() error {
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("invalid EMBEDDING_DIM %d: must be positive", c.EmbeddingDim)
	}
	if c.MatchTolerance <= 0 {
		return fmt.Errorf("invalid MATCH_TOLERANCE %f: must be positive", c.MatchTolerance)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
