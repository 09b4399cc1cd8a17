package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCalculateUtility_KnownValues(t *testing.T) {
	predictions := mat.NewDense(3, 1, []float64{1, 2, 3})
	uncertainties := mat.NewDense(3, 1, []float64{0.5, 0.5, 0.5})

	utility, err := CalculateUtility(predictions, uncertainties, []float64{1}, 1.0, Maximize)
	require.NoError(t, err)

	// centred predictions are -1, 0, 1; only the last clears the uncertainty
	want := []float64{0.5, 0.5, 1.0}
	for i, w := range want {
		assert.InDelta(t, w, utility.At(i, 0), 1e-12, "row %d", i)
	}
}

func TestCalculateUtility_Shape(t *testing.T) {
	predictions := mat.NewDense(4, 3, []float64{
		1, 10, 100,
		2, 20, 200,
		3, 30, 300,
		4, 40, 400,
	})

	cases := []struct {
		name          string
		uncertainties *mat.Dense
		weights       []float64
		curiosity     float64
		direction     Direction
	}{
		{"full uncertainty", mat.NewDense(4, 3, nil), []float64{1, 1, 1}, 0, Maximize},
		{"broadcast uncertainty", mat.NewDense(4, 1, []float64{0.1, 0.2, 0.3, 0.4}), []float64{0.2, 0.3, 0.5}, 2.5, Maximize},
		{"minimize", mat.NewDense(4, 1, []float64{1, 1, 1, 1}), []float64{1, 0, 0}, -1, Minimize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			utility, err := CalculateUtility(predictions, tc.uncertainties, tc.weights, tc.curiosity, tc.direction)
			require.NoError(t, err)

			r, c := utility.Dims()
			assert.Equal(t, 4, r)
			assert.Equal(t, 3, c)
		})
	}
}

func TestCalculateUtility_DoesNotMutateInputs(t *testing.T) {
	predictions := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	uncertainties := mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4})
	predCopy := mat.DenseCopyOf(predictions)
	uncCopy := mat.DenseCopyOf(uncertainties)

	_, err := CalculateUtility(predictions, uncertainties, []float64{1, 1}, 0.5, Maximize)
	require.NoError(t, err)

	assert.True(t, mat.Equal(predCopy, predictions))
	assert.True(t, mat.Equal(uncCopy, uncertainties))
}

func TestCalculateUtility_ConstantColumn(t *testing.T) {
	predictions := mat.NewDense(3, 1, []float64{5, 5, 5})
	uncertainties := mat.NewDense(3, 1, []float64{0, 0, 0})

	utility, err := CalculateUtility(predictions, uncertainties, []float64{1}, 1, Maximize)
	require.NoError(t, err)
	for i := range 3 {
		assert.Zero(t, utility.At(i, 0))
	}
}

func TestCalculateUtility_Errors(t *testing.T) {
	predictions := mat.NewDense(3, 2, nil)

	cases := []struct {
		name          string
		predictions   *mat.Dense
		uncertainties *mat.Dense
		weights       []float64
		direction     Direction
		wantErr       error
	}{
		{"nil predictions", nil, mat.NewDense(3, 1, nil), []float64{1, 1}, Maximize, ErrEmptyInput},
		{"nil uncertainties", predictions, nil, []float64{1, 1}, Maximize, ErrEmptyInput},
		{"row mismatch", predictions, mat.NewDense(2, 1, nil), []float64{1, 1}, Maximize, ErrShapeMismatch},
		{"column mismatch", predictions, mat.NewDense(3, 3, nil), []float64{1, 1}, Maximize, ErrShapeMismatch},
		{"weights mismatch", predictions, mat.NewDense(3, 1, nil), []float64{1}, Maximize, ErrShapeMismatch},
		{"bad direction", predictions, mat.NewDense(3, 1, nil), []float64{1, 1}, Direction(7), ErrInvalidDirection},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateUtility(tc.predictions, tc.uncertainties, tc.weights, 1, tc.direction)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestStandardize(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
		4, 7,
	})

	z := Standardize(m)
	means, stds := ColumnStats(z)

	assert.InDelta(t, 0, means[0], 1e-12)
	assert.InDelta(t, 1, stds[0], 1e-12)
	// constant column: std floored, values collapse to zero
	assert.InDelta(t, 0, means[1], 1e-12)
	for i := range 4 {
		assert.Zero(t, z.At(i, 1))
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("MAX")
	require.NoError(t, err)
	assert.Equal(t, Maximize, d)

	d, err = ParseDirection(" minimise ")
	require.NoError(t, err)
	assert.Equal(t, Minimize, d)

	_, err = ParseDirection("sideways")
	require.ErrorIs(t, err, ErrInvalidDirection)
}
