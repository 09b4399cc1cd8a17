// Package visualization builds chart descriptions from result tables.
//
// Builders never render anything themselves: they return a *Chart that a
// caller serialises or hands to a renderer. Every builder copies the columns
// it reads, keeps row order and leaves the table untouched.
package visualization

type Kind string

const (
	KindScatter             Kind = "scatter"
	KindScatterMatrix       Kind = "scatter_matrix"
	KindHistogram           Kind = "histogram"
	KindParallelCoordinates Kind = "parallel_coordinates"
	KindScatter3D           Kind = "scatter3d"
)

const (
	TemplatePlain = "plotly"
	TemplateWhite = "plotly_white"

	ColorScaleViridis = "Viridis"
)

// Chart is a serialisable chart description.
type Chart struct {
	Kind       Kind   `json:"kind"`
	Title      string `json:"title"`
	Template   string `json:"template,omitempty"`
	ColorScale string `json:"color_scale,omitempty"`
	// ColorLabel names the colour axis (legend / colour bar title).
	ColorLabel string  `json:"color_label,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Margin     *Margin `json:"margin,omitempty"`

	XAxis Axis  `json:"x_axis"`
	YAxis Axis  `json:"y_axis"`
	ZAxis *Axis `json:"z_axis,omitempty"`

	// Labels maps column names to display labels.
	Labels map[string]string `json:"labels,omitempty"`

	Traces []Trace `json:"traces,omitempty"`

	// Dimensions and Color are used by scatter matrices and parallel coordinates.
	Dimensions      []Dimension `json:"dimensions,omitempty"`
	Color           []float64   `json:"color,omitempty"`
	DiagonalVisible bool        `json:"diagonal_visible,omitempty"`
}

type Axis struct {
	Title string `json:"title"`
}

type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

type Trace struct {
	Name string    `json:"name,omitempty"`
	X    []float64 `json:"x,omitempty"`
	Y    []float64 `json:"y,omitempty"`
	Z    []float64 `json:"z,omitempty"`

	// Color holds a numeric colour value per point; Categories a label per point.
	Color      []float64 `json:"color,omitempty"`
	Categories []string  `json:"categories,omitempty"`

	MarkerSize  float64 `json:"marker_size,omitempty"`
	MarkerColor string  `json:"marker_color,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`

	Bins []Bin `json:"bins,omitempty"`
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count float64 `json:"count"`
}

type Dimension struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Rows returns the number of data rows the chart carries.
func (c *Chart) Rows() int {
	if len(c.Dimensions) > 0 {
		return len(c.Dimensions[0].Values)
	}
	n := 0
	for _, tr := range c.Traces {
		n += len(tr.X)
	}
	return n
}
