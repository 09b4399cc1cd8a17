package visualization

import (
	"context"
	"fmt"
)

const (
	ProjectionIterations = 350
	ProjectionSeed       = 42
	ProjectionMarkerSize = 7
	ProjectionHeight     = 800
)

type ProjectionParams struct {
	Perplexity   float64
	LearningRate float64
	Iterations   int
	Seed         uint64
}

func DefaultProjectionParams() ProjectionParams {
	return ProjectionParams{
		Perplexity:   20,
		LearningRate: 200,
		Iterations:   ProjectionIterations,
		Seed:         ProjectionSeed,
	}
}

// Projection embeds the feature columns into two t-SNE dimensions and colours
// the points by utilityColumn. Perplexity is capped at rows-1.
func Projection(ctx context.Context, table *Table, features []string, utilityColumn string, params ProjectionParams) (*Chart, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	if !table.HasColumn(utilityColumn) {
		return nil, fmt.Errorf("%w: the column %q is not in the dataset", ErrColumnNotFound, utilityColumn)
	}

	utility, err := table.Column(utilityColumn)
	if err != nil {
		return nil, err
	}
	x, err := table.Matrix(features)
	if err != nil {
		return nil, err
	}

	if table.Rows() < 2 {
		return nil, fmt.Errorf("%w: projection needs at least 2 rows, got %d", ErrTooFewSamples, table.Rows())
	}

	tsne := TSNE{
		Components:        2,
		Perplexity:        min(params.Perplexity, float64(table.Rows()-1)),
		LearningRate:      params.LearningRate,
		Iterations:        params.Iterations,
		EarlyExaggeration: DefaultTSNE().EarlyExaggeration,
		Seed:              params.Seed,
	}

	embedding, err := tsne.Embed(ctx, x)
	if err != nil {
		return nil, fmt.Errorf("t-SNE: %w", err)
	}

	rows := table.Rows()
	xs := make([]float64, rows)
	ys := make([]float64, rows)
	for i := range rows {
		xs[i] = embedding.At(i, 0)
		ys[i] = embedding.At(i, 1)
	}

	return &Chart{
		Kind:       KindScatter,
		Title:      "t-SNE Visualization of Data",
		Template:   TemplatePlain,
		ColorScale: ColorScaleViridis,
		ColorLabel: "Utility",
		Height:     ProjectionHeight,
		XAxis:      Axis{Title: "t-SNE Dimension 1"},
		YAxis:      Axis{Title: "t-SNE Dimension 2"},
		Labels: map[string]string{
			"t-SNE-1": "t-SNE Dimension 1",
			"t-SNE-2": "t-SNE Dimension 2",
		},
		Traces: []Trace{{
			X:          xs,
			Y:          ys,
			Color:      utility,
			MarkerSize: ProjectionMarkerSize,
		}},
	}, nil
}
