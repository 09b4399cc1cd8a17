package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"

	"github.com/tensorplex-labs/acquisition/internal/config"
	"github.com/tensorplex-labs/acquisition/internal/render"
	"github.com/tensorplex-labs/acquisition/internal/scoring"
	"github.com/tensorplex-labs/acquisition/internal/utils/logger"
	"github.com/tensorplex-labs/acquisition/internal/visualization"
)

const (
	numCandidates = 120
	numLabeled    = 12
	numFeatures   = 4
	numObjectives = 2
)

var (
	featureNames   = []string{"temperature", "pressure", "ratio", "duration"}
	objectiveNames = []string{"strength", "conductivity"}
)

func main() {
	logger.Init()

	cfg, err := config.LoadDotEnvConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	features := randomMatrix(rng, numCandidates, numFeatures)
	labeled := randomMatrix(rng, numLabeled, numFeatures)
	surrogate := linearSurrogate(randomMatrix(rng, numFeatures, numObjectives))

	predictions, err := surrogate.Predict(ctx, features)
	if err != nil {
		log.Fatal().Err(err).Msg("Surrogate prediction failed")
	}

	uncertainty, err := scoring.CalculateUncertainty(ctx, surrogate, features,
		scoring.WithPerturbations(cfg.NumPerturbations),
		scoring.WithNoiseScale(cfg.NoiseScale),
		scoring.WithSeed(cfg.Seed),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Uncertainty estimation failed")
	}

	direction, err := cfg.ParsedDirection()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid optimisation direction")
	}

	pipeline := scoring.NewAcquisitionPipeline(
		scoring.WithCuriosity(cfg.Curiosity),
		scoring.WithDirection(direction),
		scoring.WithNoveltyWeight(cfg.NoveltyWeight),
	)
	scores, err := pipeline.Process(predictions, mat.NewDense(numCandidates, 1, uncertainty), features, labeled)
	if err != nil {
		log.Fatal().Err(err).Msg("Acquisition scoring failed")
	}

	scoring.PlotScoresTerminal(os.Stdout, scores, "Acquisition ranking", 20)
	for rank, idx := range scores.Ranking()[:5] {
		log.Info().Int("rank", rank+1).Int("candidate", idx).
			Float64("combined", scores.Combined[idx]).Float64("novelty", scores.Novelty[idx]).
			Msgf("candidate %d ranked %d", idx, rank+1)
	}

	table, err := resultTable(features, predictions, scores)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build result table")
	}

	if err := writeCharts(ctx, cfg, table, scores); err != nil {
		log.Fatal().Err(err).Msg("Failed to write charts")
	}
}

func randomMatrix(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

func linearSurrogate(weights *mat.Dense) scoring.Predictor {
	return scoring.PredictorFunc(func(_ context.Context, x *mat.Dense) (*mat.Dense, error) {
		var out mat.Dense
		out.Mul(x, weights)
		return &out, nil
	})
}

func resultTable(features, predictions *mat.Dense, scores scoring.AcquisitionScores) (*visualization.Table, error) {
	table, err := visualization.TableFromDense(features, featureNames)
	if err != nil {
		return nil, err
	}

	for j, name := range objectiveNames {
		if err := table.AddColumn(name, mat.Col(nil, j, predictions)); err != nil {
			return nil, err
		}
	}
	if err := table.AddColumn("Utility", scores.RowUtility); err != nil {
		return nil, err
	}
	if err := table.AddColumn("Novelty", scores.Novelty); err != nil {
		return nil, err
	}

	tiers := make([]string, len(scores.Combined))
	for i, v := range scores.Combined {
		switch {
		case v >= 0.66:
			tiers[i] = "high"
		case v >= 0.33:
			tiers[i] = "medium"
		default:
			tiers[i] = "low"
		}
	}
	if err := table.AddLabels("Tier", tiers); err != nil {
		return nil, err
	}
	return table, nil
}

func writeCharts(ctx context.Context, cfg *config.AppConfig, table *visualization.Table, scores scoring.AcquisitionScores) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	params := visualization.ProjectionParams{
		Perplexity:   cfg.Perplexity,
		LearningRate: cfg.LearningRate,
		Iterations:   cfg.Iterations,
		Seed:         cfg.Seed,
	}

	charts := map[string]func() (*visualization.Chart, error){
		"scatter_matrix": func() (*visualization.Chart, error) {
			return visualization.ScatterMatrix(table, objectiveNames, scores.RowUtility)
		},
		"projection": func() (*visualization.Chart, error) {
			return visualization.Projection(ctx, table, featureNames, "Utility", params)
		},
		"histogram": func() (*visualization.Chart, error) {
			return visualization.Histogram(table, "Utility")
		},
		"scatter": func() (*visualization.Chart, error) {
			return visualization.Scatter(table, objectiveNames[0], objectiveNames[1], "Tier")
		},
		"parallel": func() (*visualization.Chart, error) {
			return visualization.ParallelCoordinates(table, slices.Concat(featureNames, objectiveNames), "Utility")
		},
		"scatter3d": func() (*visualization.Chart, error) {
			return visualization.Scatter3D(table, featureNames[0], featureNames[1], objectiveNames[0], "Utility")
		},
	}

	width := vg.Length(cfg.PlotWidthCM) * vg.Centimeter
	height := vg.Length(cfg.PlotHeightCM) * vg.Centimeter

	for name, build := range charts {
		chart, err := build()
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}

		if err := writeFile(filepath.Join(cfg.OutputDir, name+".json.zst"), func(f *os.File) error {
			return visualization.WriteCompressed(f, chart)
		}); err != nil {
			return err
		}

		err = writeFile(filepath.Join(cfg.OutputDir, name+".png"), func(f *os.File) error {
			return render.WritePNG(f, chart, width, height)
		})
		switch {
		case err == nil:
			log.Info().Str("chart", name).Str("dir", cfg.OutputDir).Msg("Wrote chart and image")
		case errors.Is(err, render.ErrUnsupportedKind):
			_ = os.Remove(filepath.Join(cfg.OutputDir, name+".png"))
			log.Info().Str("chart", name).Msg("Wrote chart description only, no image renderer for this kind")
		default:
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
