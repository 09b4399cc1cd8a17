package visualization

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const HistogramBins = 20

// Histogram builds a frequency histogram of one numeric column with
// HistogramBins equal-width bins spanning the column's range. Non-finite
// values are dropped from both the bins and the trace.
func Histogram(table *Table, column string) (*Chart, error) {
	values, err := table.Column(column)
	if err != nil {
		return nil, err
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrEmptyTable, column)
	}

	return &Chart{
		Kind:     KindHistogram,
		Title:    fmt.Sprintf("Histogram of %s", column),
		Template: TemplatePlain,
		XAxis:    Axis{Title: column},
		YAxis:    Axis{Title: "Frequency"},
		Traces: []Trace{{
			Name:        column,
			X:           finite,
			MarkerColor: "blue",
			Opacity:     0.75,
			Bins:        histogramBins(finite, HistogramBins),
		}},
	}, nil
}

func histogramBins(values []float64, n int) []Bin {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// the last bin is closed on the right; stat.Histogram wants an open bound
	dividers[0] = lo
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: counts[i]}
	}
	bins[n-1].Hi = hi
	return bins
}
