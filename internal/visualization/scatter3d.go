package visualization

import "fmt"

const (
	Scatter3DWidth      = 1200
	Scatter3DHeight     = 900
	Scatter3DMarkerSize = 8
)

func Scatter3D(table *Table, x, y, z, colorColumn string) (*Chart, error) {
	columns, err := table.columns([]string{x, y, z})
	if err != nil {
		return nil, err
	}

	trace := Trace{
		X:          columns[0],
		Y:          columns[1],
		Z:          columns[2],
		MarkerSize: Scatter3DMarkerSize,
	}
	if err := applyColor(table, colorColumn, &trace); err != nil {
		return nil, err
	}

	return &Chart{
		Kind:       KindScatter3D,
		Title:      fmt.Sprintf("3D Scatter Plot (%s vs %s vs %s)", x, y, z),
		Template:   TemplateWhite,
		ColorLabel: colorColumn,
		Width:      Scatter3DWidth,
		Height:     Scatter3DHeight,
		Margin:     &Margin{Left: 0, Right: 0, Top: 50, Bottom: 0},
		XAxis:      Axis{Title: x},
		YAxis:      Axis{Title: y},
		ZAxis:      &Axis{Title: z},
		Labels:     map[string]string{x: x, y: y, z: z, colorColumn: colorColumn},
		Traces:     []Trace{trace},
	}, nil
}
