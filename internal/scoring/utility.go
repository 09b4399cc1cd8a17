// Package scoring computes acquisition scores for an active-learning loop:
// utility, novelty and perturbation-based uncertainty.
package scoring

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// CalculateUtility scores every candidate/objective pair as
//
//	max(0, (prediction - columnMean) - uncertainty) + curiosity*uncertainty
//
// uncertainties is either the same shape as predictions or a single column
// that is broadcast across objectives. weights must hold one entry per
// objective and direction must be known; neither changes the arithmetic.
func CalculateUtility(predictions, uncertainties *mat.Dense, weights []float64, curiosity float64, direction Direction) (*mat.Dense, error) {
	return calculateUtility(predictions, uncertainties, weights, curiosity, direction, false)
}

func calculateUtility(predictions, uncertainties *mat.Dense, weights []float64, curiosity float64, direction Direction, standardized bool) (*mat.Dense, error) {
	if err := validateUtilityInputs(predictions, uncertainties, weights, direction); err != nil {
		return nil, err
	}

	var improvementBase *mat.Dense
	if standardized {
		improvementBase = Standardize(predictions)
	} else {
		improvementBase = CenterColumns(predictions)
	}

	_, uncCols := uncertainties.Dims()
	uncertaintyAt := func(i, j int) float64 {
		if uncCols == 1 {
			return uncertainties.At(i, 0)
		}
		return uncertainties.At(i, j)
	}

	var utility mat.Dense
	utility.Apply(func(i, j int, v float64) float64 {
		u := uncertaintyAt(i, j)
		expectedImprovement := max(0, v-u)
		return expectedImprovement + curiosity*u
	}, improvementBase)

	rows, cols := utility.Dims()
	log.Debug().Int("rows", rows).Int("cols", cols).Float64("curiosity", curiosity).
		Str("direction", direction.String()).Bool("standardized", standardized).
		Msg("Calculated utility scores")

	return &utility, nil
}

func validateUtilityInputs(predictions, uncertainties *mat.Dense, weights []float64, direction Direction) error {
	if predictions == nil || predictions.IsEmpty() {
		return fmt.Errorf("%w: predictions", ErrEmptyInput)
	}
	if uncertainties == nil || uncertainties.IsEmpty() {
		return fmt.Errorf("%w: uncertainties", ErrEmptyInput)
	}

	predRows, predCols := predictions.Dims()
	uncRows, uncCols := uncertainties.Dims()

	if uncRows != predRows {
		return fmt.Errorf("%w: %d prediction rows but %d uncertainty rows", ErrShapeMismatch, predRows, uncRows)
	}
	if uncCols != predCols && uncCols != 1 {
		return fmt.Errorf("%w: %d prediction columns but %d uncertainty columns", ErrShapeMismatch, predCols, uncCols)
	}
	if len(weights) != predCols {
		return fmt.Errorf("%w: %d objectives but %d weights", ErrShapeMismatch, predCols, len(weights))
	}
	if !direction.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDirection, direction)
	}

	return nil
}
