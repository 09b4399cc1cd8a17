package scoring

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestCalculateNovelty_FarPointIsMaximallyNovel(t *testing.T) {
	candidates := mat.NewDense(2, 2, []float64{0, 0, 10, 10})
	labeled := mat.NewDense(1, 2, []float64{0, 0})

	novelty, err := CalculateNovelty(candidates, labeled)
	require.NoError(t, err)
	require.Len(t, novelty, 2)

	assert.InDelta(t, 0, novelty[0], 1e-9)
	assert.InDelta(t, 1, novelty[1], 1e-6)
}

func TestCalculateNovelty_EmptyLabeled(t *testing.T) {
	candidates := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	for name, labeled := range map[string]mat.Matrix{
		"nil":        nil,
		"typed nil":  (*mat.Dense)(nil),
		"zero value": &mat.Dense{},
	} {
		t.Run(name, func(t *testing.T) {
			novelty, err := CalculateNovelty(candidates, labeled)
			require.NoError(t, err)
			assert.Equal(t, []float64{0, 0, 0}, novelty)
		})
	}
}

func TestCalculateNovelty_IdenticalSets(t *testing.T) {
	points := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})

	novelty, err := CalculateNovelty(points, points)
	require.NoError(t, err)
	for _, v := range novelty {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestCalculateNovelty_MatchesDistanceMatrix(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	candidates := randomDense(rng, 40, 3, 5)
	labeled := randomDense(rng, 15, 3, 5)

	novelty, err := CalculateNovelty(candidates, labeled)
	require.NoError(t, err)

	distances, err := DistanceMatrix(candidates, labeled)
	require.NoError(t, err)

	minDistances := make([]float64, 40)
	for i := range minDistances {
		minDistances[i] = floats.Min(distances.RawRowView(i))
	}
	want := ScaleByMax(minDistances, Epsilon)

	for i := range want {
		assert.InDelta(t, want[i], novelty[i], 1e-9, "row %d", i)
		assert.GreaterOrEqual(t, novelty[i], 0.0)
		assert.LessOrEqual(t, novelty[i], 1.0)
	}
}

func TestCalculateNovelty_ShapeMismatch(t *testing.T) {
	_, err := CalculateNovelty(mat.NewDense(2, 3, nil), mat.NewDense(2, 2, nil))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDistanceMatrix(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{0, 0, 3, 4})
	b := mat.NewDense(1, 2, []float64{0, 0})

	d, err := DistanceMatrix(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0, d.At(0, 0), 1e-12)
	assert.InDelta(t, 5, d.At(1, 0), 1e-12)

	_, err = DistanceMatrix(a, nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}
