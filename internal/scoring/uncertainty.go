package scoring

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type UncertaintyConfig struct {
	Perturbations int     // number of noisy forward passes
	NoiseScale    float64 // standard deviation of the Gaussian input noise
	Seed          uint64  // seed of the noise source
}

type UncertaintyOption func(*UncertaintyConfig)

func WithPerturbations(n int) UncertaintyOption {
	return func(c *UncertaintyConfig) {
		c.Perturbations = n
	}
}

func WithNoiseScale(scale float64) UncertaintyOption {
	return func(c *UncertaintyConfig) {
		c.NoiseScale = scale
	}
}

func WithSeed(seed uint64) UncertaintyOption {
	return func(c *UncertaintyConfig) {
		c.Seed = seed
	}
}

// CalculateUncertainty estimates model confidence by running the model on
// Perturbations noisy copies of inputs. For each input row it returns the mean,
// over output dimensions, of the population standard deviation across trials.
// The noise sequence depends only on the configured seed, so repeated calls
// with the same arguments return the same result.
func CalculateUncertainty(ctx context.Context, model Predictor, inputs *mat.Dense, opts ...UncertaintyOption) ([]float64, error) {
	cfg := DefaultUncertaintyConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if model == nil {
		return nil, fmt.Errorf("%w: model", ErrEmptyInput)
	}
	if inputs == nil || inputs.IsEmpty() {
		return nil, fmt.Errorf("%w: inputs", ErrEmptyInput)
	}
	if cfg.Perturbations < 1 {
		return nil, fmt.Errorf("%w: perturbations must be >= 1, got %d", ErrInvalidParameter, cfg.Perturbations)
	}
	if cfg.NoiseScale < 0 {
		return nil, fmt.Errorf("%w: noise scale must be >= 0, got %f", ErrInvalidParameter, cfg.NoiseScale)
	}

	startTime := time.Now()
	rows, _ := inputs.Dims()

	noise := distuv.Normal{
		Mu:    0,
		Sigma: cfg.NoiseScale,
		Src:   rand.NewPCG(cfg.Seed, cfg.Seed),
	}

	trials := make([]*mat.Dense, 0, cfg.Perturbations)
	outCols := 0
	for trial := range cfg.Perturbations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var perturbed mat.Dense
		perturbed.Apply(func(_, _ int, v float64) float64 {
			return v + noise.Rand()
		}, inputs)

		out, err := model.Predict(ctx, &perturbed)
		if err != nil {
			return nil, fmt.Errorf("predict perturbation %d: %w", trial, err)
		}
		if out == nil || out.IsEmpty() {
			return nil, fmt.Errorf("%w: model returned no output on perturbation %d", ErrShapeMismatch, trial)
		}

		r, c := out.Dims()
		if r != rows {
			return nil, fmt.Errorf("%w: model returned %d rows for %d inputs", ErrShapeMismatch, r, rows)
		}
		if trial == 0 {
			outCols = c
		} else if c != outCols {
			return nil, fmt.Errorf("%w: model output width changed from %d to %d", ErrShapeMismatch, outCols, c)
		}

		trials = append(trials, out)
	}

	uncertainty := make([]float64, rows)
	samples := make([]float64, len(trials))
	dimStds := make([]float64, outCols)
	for rowIdx := range rows {
		for colIdx := range outCols {
			for t, out := range trials {
				samples[t] = out.At(rowIdx, colIdx)
			}
			_, dimStds[colIdx] = stat.PopMeanStdDev(samples, nil)
		}
		uncertainty[rowIdx] = floats.Sum(dimStds) / float64(outCols)
	}

	log.Debug().Int("rows", rows).Int("perturbations", cfg.Perturbations).
		Float64("noiseScale", cfg.NoiseScale).Dur("elapsed", time.Since(startTime)).
		Msg("Calculated perturbation uncertainty")

	return uncertainty, nil
}
