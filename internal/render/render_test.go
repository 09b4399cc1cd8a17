package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/tensorplex-labs/acquisition/internal/visualization"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleTable(t *testing.T) *visualization.Table {
	t.Helper()

	tbl := visualization.NewTable()
	require.NoError(t, tbl.AddColumn("a", []float64{1, 2, 3, 4, 5}))
	require.NoError(t, tbl.AddColumn("b", []float64{5, 3, 4, 1, 2}))
	require.NoError(t, tbl.AddColumn("c", []float64{0.2, 0.4, 0.1, 0.9, 0.5}))
	require.NoError(t, tbl.AddColumn("Utility", []float64{0, 0.25, 0.5, 0.75, 1}))
	require.NoError(t, tbl.AddLabels("group", []string{"x", "y", "x", "z", "y"}))
	return tbl
}

func TestWritePNG(t *testing.T) {
	tbl := sampleTable(t)

	build := map[string]func() (*visualization.Chart, error){
		"scatter": func() (*visualization.Chart, error) {
			return visualization.Scatter(tbl, "a", "b", "Utility")
		},
		"categorical scatter": func() (*visualization.Chart, error) {
			return visualization.Scatter(tbl, "a", "b", "group")
		},
		"histogram": func() (*visualization.Chart, error) {
			return visualization.Histogram(tbl, "c")
		},
		"parallel": func() (*visualization.Chart, error) {
			return visualization.ParallelCoordinates(tbl, []string{"a", "b", "c"}, "Utility")
		},
		"scatter matrix": func() (*visualization.Chart, error) {
			return visualization.ScatterMatrix(tbl, []string{"a", "b", "c"}, []float64{1, 2, 3, 4, 5})
		},
	}

	for name, fn := range build {
		t.Run(name, func(t *testing.T) {
			chart, err := fn()
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WritePNG(&buf, chart, 10*vg.Centimeter, 8*vg.Centimeter))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestPlot_UnsupportedKinds(t *testing.T) {
	tbl := sampleTable(t)

	chart, err := visualization.Scatter3D(tbl, "a", "b", "c", "Utility")
	require.NoError(t, err)
	_, err = Plot(chart)
	require.ErrorIs(t, err, ErrUnsupportedKind)

	var buf bytes.Buffer
	require.ErrorIs(t, WritePNG(&buf, chart, vg.Centimeter, vg.Centimeter), ErrUnsupportedKind)

	matrix, err := visualization.ScatterMatrix(tbl, []string{"a"}, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = Plot(matrix)
	require.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestPlot_Malformed(t *testing.T) {
	_, err := Plot(&visualization.Chart{
		Kind:   visualization.KindScatter,
		Traces: []visualization.Trace{{X: []float64{1, 2}, Y: []float64{1}}},
	})
	require.ErrorIs(t, err, ErrMalformedChart)

	_, err = Plot(&visualization.Chart{Kind: visualization.KindHistogram})
	require.ErrorIs(t, err, ErrMalformedChart)

	_, err = Plot(&visualization.Chart{Kind: visualization.KindParallelCoordinates})
	require.ErrorIs(t, err, ErrMalformedChart)
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, unitScale([]float64{2, 3, 4}))
	assert.Equal(t, []float64{0.5, 0.5}, unitScale([]float64{7, 7}))

	cat := categoricalColors([]string{"x", "y", "x"})
	assert.Equal(t, cat(0), cat(2))
	assert.NotEqual(t, cat(0), cat(1))

	faded := withOpacity(color.RGBA{B: 255, A: 255}, 0.5)
	assert.Equal(t, uint8(127), faded.(color.NRGBA).A)
}
