package visualization

import "fmt"

// Scatter builds a 2D scatter of x against y. colorBy is optional: a numeric
// column colours on a continuous scale, a label column colours by category.
func Scatter(table *Table, x, y, colorBy string) (*Chart, error) {
	columns, err := table.columns([]string{x, y})
	if err != nil {
		return nil, err
	}

	trace := Trace{X: columns[0], Y: columns[1]}
	chart := &Chart{
		Kind:     KindScatter,
		Title:    fmt.Sprintf("%s vs %s", x, y),
		Template: TemplatePlain,
		XAxis:    Axis{Title: x},
		YAxis:    Axis{Title: y},
		Labels:   map[string]string{x: x, y: y},
	}

	if colorBy != "" {
		if err := applyColor(table, colorBy, &trace); err != nil {
			return nil, err
		}
		chart.ColorLabel = colorBy
		chart.Labels[colorBy] = colorBy
	}

	chart.Traces = []Trace{trace}
	return chart, nil
}

func applyColor(table *Table, colorBy string, trace *Trace) error {
	if table.IsNumeric(colorBy) {
		values, err := table.Column(colorBy)
		if err != nil {
			return err
		}
		trace.Color = values
		return nil
	}

	labels, err := table.Labels(colorBy)
	if err != nil {
		return err
	}
	trace.Categories = labels
	return nil
}
