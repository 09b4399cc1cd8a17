package scoring

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// CalculateNovelty returns, for each candidate row, the Euclidean distance to
// the nearest labelled row divided by the largest such distance plus Epsilon.
// An empty (nil or zero-row) labelled set yields zeros.
func CalculateNovelty(features, labeled mat.Matrix) ([]float64, error) {
	featRows, featCols := dims(features)
	labRows, labCols := dims(labeled)

	if labRows == 0 {
		log.Debug().Int("candidates", featRows).Msg("No labelled samples, novelty is zero")
		return make([]float64, featRows), nil
	}
	if featRows == 0 {
		return []float64{}, nil
	}
	if featCols != labCols {
		return nil, fmt.Errorf("%w: %d candidate features but %d labelled features", ErrShapeMismatch, featCols, labCols)
	}

	tree := kdtree.New(rowPoints(labeled), false)

	minDistances := make([]float64, featRows)
	for rowIdx := range featRows {
		q := kdtree.Point(mat.Row(nil, rowIdx, features))
		_, sqDist := tree.Nearest(q)
		minDistances[rowIdx] = math.Sqrt(sqDist)
	}

	return ScaleByMax(minDistances, Epsilon), nil
}

// DistanceMatrix returns the pairwise Euclidean distances between the rows of
// a and the rows of b.
func DistanceMatrix(a, b mat.Matrix) (*mat.Dense, error) {
	aRows, aCols := dims(a)
	bRows, bCols := dims(b)

	if aRows == 0 || bRows == 0 {
		return nil, ErrEmptyInput
	}
	if aCols != bCols {
		return nil, fmt.Errorf("%w: %d vs %d columns", ErrShapeMismatch, aCols, bCols)
	}

	bRowsCache := make([][]float64, bRows)
	for j := range bRows {
		bRowsCache[j] = mat.Row(nil, j, b)
	}

	distances := mat.NewDense(aRows, bRows, nil)
	aRow := make([]float64, aCols)
	for i := range aRows {
		mat.Row(aRow, i, a)
		for j := range bRows {
			distances.Set(i, j, floats.Distance(aRow, bRowsCache[j], 2))
		}
	}

	return distances, nil
}

func rowPoints(m mat.Matrix) kdtree.Points {
	rows, _ := m.Dims()
	points := make(kdtree.Points, rows)
	for i := range rows {
		points[i] = kdtree.Point(mat.Row(nil, i, m))
	}
	return points
}

// dims treats nil and typed-nil dense matrices as empty.
func dims(m mat.Matrix) (rows, cols int) {
	if m == nil {
		return 0, 0
	}
	if d, ok := m.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return 0, 0
	}
	return m.Dims()
}
