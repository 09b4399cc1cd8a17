package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnvConfig loads the given .env files (".env" when none are given) and
// then parses the environment. Missing files are not an error.
func LoadDotEnvConfig(files ...string) (*AppConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.NumPerturbations < 1 {
		return fmt.Errorf("NUM_PERTURBATIONS must be >= 1, got %d", c.NumPerturbations)
	}
	if c.NoiseScale < 0 {
		return fmt.Errorf("NOISE_SCALE must be >= 0, got %f", c.NoiseScale)
	}
	if _, err := c.ParsedDirection(); err != nil {
		return fmt.Errorf("DIRECTION: %w", err)
	}
	if c.Perplexity <= 0 {
		return fmt.Errorf("TSNE_PERPLEXITY must be > 0, got %f", c.Perplexity)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("TSNE_LEARNING_RATE must be > 0, got %f", c.LearningRate)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("TSNE_ITERATIONS must be >= 1, got %d", c.Iterations)
	}
	return nil
}
