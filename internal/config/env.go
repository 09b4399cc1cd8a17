// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/tensorplex-labs/acquisition/internal/scoring"
)

type AppConfig struct {
	ScoringEnvConfig
	ProjectionEnvConfig
	RenderEnvConfig
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ScoringEnvConfig holds the acquisition scoring knobs.
// Seed feeds every random source explicitly; nothing reads a process-wide seed.
type ScoringEnvConfig struct {
	Seed             uint64  `env:"SEED" envDefault:"42"`
	Curiosity        float64 `env:"CURIOSITY" envDefault:"0.5"`
	NumPerturbations int     `env:"NUM_PERTURBATIONS" envDefault:"50"`
	NoiseScale       float64 `env:"NOISE_SCALE" envDefault:"0.5"`
	NoveltyWeight    float64 `env:"NOVELTY_WEIGHT" envDefault:"1.0"`
	Direction        string  `env:"DIRECTION" envDefault:"max"`
}

// ProjectionEnvConfig holds t-SNE hyperparameters for the projection chart.
type ProjectionEnvConfig struct {
	Perplexity   float64 `env:"TSNE_PERPLEXITY" envDefault:"20"`
	LearningRate float64 `env:"TSNE_LEARNING_RATE" envDefault:"200"`
	Iterations   int     `env:"TSNE_ITERATIONS" envDefault:"350"`
}

// RenderEnvConfig configures where and how large charts are rendered.
type RenderEnvConfig struct {
	OutputDir    string  `env:"OUTPUT_DIR" envDefault:"plots"`
	PlotWidthCM  float64 `env:"PLOT_WIDTH_CM" envDefault:"16"`
	PlotHeightCM float64 `env:"PLOT_HEIGHT_CM" envDefault:"12"`
}

// ParsedDirection converts DIRECTION into a scoring.Direction.
func (c ScoringEnvConfig) ParsedDirection() (scoring.Direction, error) {
	return scoring.ParseDirection(c.Direction)
}
