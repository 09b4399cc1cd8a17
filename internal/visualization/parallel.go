package visualization

// ParallelCoordinates builds a parallel-coordinates chart with one axis per
// dimension, in the order given, with lines coloured by colorColumn.
func ParallelCoordinates(table *Table, dimensions []string, colorColumn string) (*Chart, error) {
	if len(dimensions) == 0 {
		return nil, ErrNoDimensions
	}

	columns, err := table.columns(dimensions)
	if err != nil {
		return nil, err
	}
	color, err := table.Column(colorColumn)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(dimensions)+1)
	dims := make([]Dimension, len(dimensions))
	for i, name := range dimensions {
		labels[name] = name
		dims[i] = Dimension{Label: name, Values: columns[i]}
	}
	labels[colorColumn] = colorColumn

	return &Chart{
		Kind:       KindParallelCoordinates,
		Title:      "Parallel Coordinate Plot",
		Template:   TemplateWhite,
		ColorLabel: colorColumn,
		Labels:     labels,
		Dimensions: dims,
		Color:      color,
	}, nil
}
