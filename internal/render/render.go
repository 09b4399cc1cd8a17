// Package render draws visualization charts with gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/tensorplex-labs/acquisition/internal/visualization"
)

var (
	ErrUnsupportedKind = errors.New("render: unsupported chart kind")
	ErrMalformedChart  = errors.New("render: malformed chart")
)

const defaultMarkerSize = 6

// Plot converts a single-panel chart into a gonum plot. Scatter matrices need
// several panels and are only available through WritePNG.
func Plot(c *visualization.Chart) (*plot.Plot, error) {
	switch c.Kind {
	case visualization.KindScatter:
		return scatterPlot(c)
	case visualization.KindHistogram:
		return histogramPlot(c)
	case visualization.KindParallelCoordinates:
		return parallelPlot(c)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, c.Kind)
}

// WritePNG renders the chart as a PNG image of the given size.
func WritePNG(w io.Writer, c *visualization.Chart, width, height vg.Length) error {
	if c.Kind == visualization.KindScatterMatrix {
		return writeScatterMatrix(w, c, width, height)
	}

	p, err := Plot(c)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Kind, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s png: %w", c.Kind, err)
	}
	return nil
}

func newPlot(c *visualization.Chart) *plot.Plot {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XAxis.Title
	p.Y.Label.Text = c.YAxis.Title
	return p
}

func scatterPlot(c *visualization.Chart) (*plot.Plot, error) {
	p := newPlot(c)

	for k, tr := range c.Traces {
		if len(tr.X) != len(tr.Y) {
			return nil, fmt.Errorf("%w: trace %d has %d x and %d y values", ErrMalformedChart, k, len(tr.X), len(tr.Y))
		}

		s, err := scatter(tr.X, tr.Y, traceColors(tr, k), tr.MarkerSize)
		if err != nil {
			return nil, err
		}
		p.Add(s)
	}

	return p, nil
}

func scatter(xs, ys []float64, colorAt func(int) color.Color, markerSize float64) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}

	if markerSize <= 0 {
		markerSize = defaultMarkerSize
	}
	radius := vg.Points(markerSize / 2)
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: colorAt(i), Radius: radius, Shape: draw.CircleGlyph{}}
	}
	return s, nil
}

func histogramPlot(c *visualization.Chart) (*plot.Plot, error) {
	if len(c.Traces) == 0 || len(c.Traces[0].Bins) == 0 {
		return nil, fmt.Errorf("%w: histogram without bins", ErrMalformedChart)
	}
	tr := c.Traces[0]

	bins := make([]plotter.HistogramBin, len(tr.Bins))
	for i, b := range tr.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: b.Count}
	}

	fill := namedColor(tr.MarkerColor, plotutil.Color(0))
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     tr.Bins[0].Hi - tr.Bins[0].Lo,
		FillColor: withOpacity(fill, tr.Opacity),
		LineStyle: plotter.DefaultLineStyle,
	}

	p := newPlot(c)
	p.Add(h)
	return p, nil
}

// parallelPlot draws one polyline per row across min-max scaled axes.
func parallelPlot(c *visualization.Chart) (*plot.Plot, error) {
	if len(c.Dimensions) == 0 {
		return nil, fmt.Errorf("%w: no dimensions", ErrMalformedChart)
	}
	rows := len(c.Dimensions[0].Values)

	scaled := make([][]float64, len(c.Dimensions))
	ticks := make([]plot.Tick, len(c.Dimensions))
	for d, dim := range c.Dimensions {
		if len(dim.Values) != rows {
			return nil, fmt.Errorf("%w: dimension %q has %d values, want %d", ErrMalformedChart, dim.Label, len(dim.Values), rows)
		}
		scaled[d] = unitScale(dim.Values)
		ticks[d] = plot.Tick{Value: float64(d), Label: dim.Label}
	}

	colorAt := func(int) color.Color { return plotutil.Color(0) }
	if len(c.Color) == rows {
		colorAt = continuousColors(c.Color)
	}

	p := newPlot(c)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Label.Text = "scaled value"

	for r := range rows {
		xys := make(plotter.XYs, len(c.Dimensions))
		for d := range c.Dimensions {
			xys[d] = plotter.XY{X: float64(d), Y: scaled[d][r]}
		}

		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("parallel line %d: %w", r, err)
		}
		l.LineStyle.Color = colorAt(r)
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
	}

	return p, nil
}

func writeScatterMatrix(w io.Writer, c *visualization.Chart, width, height vg.Length) error {
	k := len(c.Dimensions)
	if k == 0 {
		return fmt.Errorf("%w: no dimensions", ErrMalformedChart)
	}
	rows := len(c.Dimensions[0].Values)

	colorAt := func(int) color.Color { return plotutil.Color(0) }
	if len(c.Color) == rows {
		colorAt = continuousColors(c.Color)
	}

	plots := make([][]*plot.Plot, k)
	for i := range k {
		plots[i] = make([]*plot.Plot, k)
		for j := range k {
			xDim, yDim := c.Dimensions[j], c.Dimensions[i]
			if len(xDim.Values) != rows || len(yDim.Values) != rows {
				return fmt.Errorf("%w: ragged dimensions", ErrMalformedChart)
			}

			p := plot.New()
			if i == j && !c.DiagonalVisible {
				if rows > 0 {
					p.X.Min, p.X.Max = floats.Min(xDim.Values), floats.Max(xDim.Values)
					p.Y.Min, p.Y.Max = p.X.Min, p.X.Max
				}
				p.HideAxes()
				plots[i][j] = p
				continue
			}

			s, err := scatter(xDim.Values, yDim.Values, colorAt, 3)
			if err != nil {
				return err
			}
			p.Add(s)
			if i == k-1 {
				p.X.Label.Text = xDim.Label
			}
			if j == 0 {
				p.Y.Label.Text = yDim.Label
			}
			plots[i][j] = p
		}
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      k,
		Cols:      k,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range k {
		for j := range k {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write scatter matrix png: %w", err)
	}
	log.Debug().Int("panels", k*k).Msg("Rendered scatter matrix")
	return nil
}

func traceColors(tr visualization.Trace, traceIdx int) func(int) color.Color {
	switch {
	case len(tr.Color) == len(tr.X) && len(tr.X) > 0:
		return continuousColors(tr.Color)
	case len(tr.Categories) == len(tr.X) && len(tr.X) > 0:
		return categoricalColors(tr.Categories)
	}

	c := withOpacity(namedColor(tr.MarkerColor, plotutil.Color(traceIdx)), tr.Opacity)
	return func(int) color.Color { return c }
}

func continuousColors(values []float64) func(int) color.Color {
	cm := moreland.SmoothBlueRed()
	lo, hi := floats.Min(values), floats.Max(values)
	if !(hi > lo) {
		hi = lo + 1
	}
	cm.SetMax(hi)
	cm.SetMin(lo)

	fallback := plotutil.Color(0)
	return func(i int) color.Color {
		c, err := cm.At(values[i])
		if err != nil {
			return fallback
		}
		return c
	}
}

// categoricalColors assigns palette colours in order of first appearance.
func categoricalColors(labels []string) func(int) color.Color {
	index := make(map[string]int)
	for _, l := range labels {
		if _, ok := index[l]; !ok {
			index[l] = len(index)
		}
	}
	return func(i int) color.Color {
		return plotutil.Color(index[labels[i]])
	}
}

func unitScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	for i, v := range values {
		if hi == lo {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

func namedColor(name string, fallback color.Color) color.Color {
	switch name {
	case "blue":
		return color.RGBA{B: 255, A: 255}
	case "red":
		return color.RGBA{R: 255, A: 255}
	case "green":
		return color.RGBA{G: 128, A: 255}
	case "black":
		return color.Black
	}
	return fallback
}

func withOpacity(c color.Color, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(opacity * 255)
	return n
}
