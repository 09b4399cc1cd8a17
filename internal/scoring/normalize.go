package scoring

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats returns the per-column mean and population standard deviation,
// with the deviation clipped below at StdFloor.
func ColumnStats(m mat.Matrix) (means, stds []float64) {
	rows, cols := m.Dims()
	means = make([]float64, cols)
	stds = make([]float64, cols)

	col := make([]float64, rows)
	for colIdx := range cols {
		mat.Col(col, colIdx, m)
		mean, std := stat.PopMeanStdDev(col, nil)
		means[colIdx] = mean
		stds[colIdx] = max(std, StdFloor)
	}

	return means, stds
}

// CenterColumns subtracts each column's mean.
func CenterColumns(m *mat.Dense) *mat.Dense {
	means, _ := ColumnStats(m)

	var centered mat.Dense
	centered.Apply(func(_, j int, v float64) float64 {
		return v - means[j]
	}, m)

	return &centered
}

// Standardize subtracts each column's mean and divides by its clipped
// population standard deviation.
func Standardize(m *mat.Dense) *mat.Dense {
	means, stds := ColumnStats(m)

	var standardized mat.Dense
	standardized.Apply(func(_, j int, v float64) float64 {
		return (v - means[j]) / stds[j]
	}, m)

	return &standardized
}

// ScaleByMax divides every element by max(arr)+eps. An empty slice yields an
// empty slice.
func ScaleByMax(arr []float64, eps float64) []float64 {
	result := make([]float64, len(arr))
	if len(arr) == 0 {
		return result
	}
	copy(result, arr)

	floats.Scale(1.0/(floats.Max(result)+eps), result)

	return result
}

func MinMaxScale(scores []float64) []float64 {
	result := make([]float64, len(scores))
	if len(scores) == 0 {
		return result
	}
	copy(result, scores)

	lo := floats.Min(result)
	hi := floats.Max(result)

	if hi != lo {
		floats.AddConst(-lo, result)
		floats.Scale(1.0/(hi-lo), result)
	} else {
		floats.Scale(0, result)
	}

	return result
}
