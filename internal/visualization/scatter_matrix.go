package visualization

import (
	"fmt"
	"slices"
)

// ScatterMatrix builds a pairwise scatter matrix of the target columns,
// coloured by utility. Diagonal self-comparisons are hidden.
func ScatterMatrix(table *Table, targets []string, utility []float64) (*Chart, error) {
	if len(targets) == 0 {
		return nil, ErrNoDimensions
	}
	if len(utility) != table.Rows() {
		return nil, fmt.Errorf("%w: %d utility scores for %d rows", ErrRowMismatch, len(utility), table.Rows())
	}

	columns, err := table.columns(targets)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(targets))
	dimensions := make([]Dimension, len(targets))
	for i, name := range targets {
		labels[name] = name
		dimensions[i] = Dimension{Label: name, Values: columns[i]}
	}

	return &Chart{
		Kind:            KindScatterMatrix,
		Title:           "Scatter Matrix of Target Properties",
		Template:        TemplatePlain,
		ColorScale:      ColorScaleViridis,
		ColorLabel:      "Utility",
		Labels:          labels,
		Dimensions:      dimensions,
		Color:           slices.Clone(utility),
		DiagonalVisible: false,
	}, nil
}
