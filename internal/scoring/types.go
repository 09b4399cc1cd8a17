package scoring

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Direction is the optimisation direction of the objectives.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) valid() bool {
	return d == Maximize || d == Minimize
}

// ParseDirection accepts "max"/"maximize" and "min"/"minimize", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "maximise":
		return Maximize, nil
	case "min", "minimize", "minimise":
		return Minimize, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Predictor maps a batch of inputs to a batch of outputs with the same row count.
type Predictor interface {
	Predict(ctx context.Context, inputs *mat.Dense) (*mat.Dense, error)
}

// PredictorFunc adapts an ordinary function to Predictor.
type PredictorFunc func(ctx context.Context, inputs *mat.Dense) (*mat.Dense, error)

func (f PredictorFunc) Predict(ctx context.Context, inputs *mat.Dense) (*mat.Dense, error) {
	return f(ctx, inputs)
}

type AcquisitionScores struct {
	Utility    *mat.Dense // 2D: utility per candidate and objective
	RowUtility []float64  // 1D: utility summed across objectives
	Novelty    []float64  // 1D: normalised distance to nearest labelled sample
	Combined   []float64  // 1D: min-max scaled blend of utility and novelty
}

// Ranking returns candidate indices ordered by combined score, best first.
// Ties keep their original order.
func (s AcquisitionScores) Ranking() []int {
	idx := make([]int, len(s.Combined))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Combined[idx[a]] > s.Combined[idx[b]]
	})
	return idx
}
