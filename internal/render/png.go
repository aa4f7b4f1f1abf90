package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/KaramelBytes/crimedash/internal/chart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnsupported is returned for figure kinds that have no static rendering.
var ErrUnsupported = errors.New("no static rendering for this chart kind")

// Options sets the output image size.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions renders 10x6 inch images.
func DefaultOptions() Options {
	return Options{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// Supported reports whether fig can be rendered to PNG.
func Supported(fig chart.Figure) bool {
	switch fig.Kind() {
	case chart.KindBar, chart.KindScatter, chart.KindHeatmap:
		return true
	}
	return false
}

// PNG renders fig to PNG bytes.
func PNG(fig chart.Figure, opt Options) ([]byte, error) {
	p, err := Plot(fig)
	if err != nil {
		return nil, err
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultOptions()
	}
	wt, err := p.WriterTo(opt.Width, opt.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", fig.ID, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", fig.ID, err)
	}
	return buf.Bytes(), nil
}

// Plot converts fig into a gonum plot styled with the dark theme.
func Plot(fig chart.Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title()
	applyTheme(p)
	if ax := fig.Layout.XAxis; ax != nil && ax.Title != nil {
		p.X.Label.Text = ax.Title.Text
	}
	if ax := fig.Layout.YAxis; ax != nil && ax.Title != nil {
		p.Y.Label.Text = ax.Title.Text
	}

	var err error
	switch fig.Kind() {
	case chart.KindBar:
		err = addBars(p, fig)
	case chart.KindScatter:
		err = addScatter(p, fig)
	case chart.KindHeatmap:
		err = addHeatmap(p, fig)
	default:
		return nil, fmt.Errorf("render %s (%s): %w", fig.ID, fig.Kind(), ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", fig.ID, err)
	}
	return p, nil
}

func applyTheme(p *plot.Plot) {
	bg := mustParse(chart.Dark.Background)
	fg := mustParse(chart.Dark.Foreground)
	grid := mustParse(chart.Dark.Grid)

	p.BackgroundColor = bg
	p.Title.TextStyle.Color = fg
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Legend.TextStyle.Color = fg
	p.Legend.Top = true
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = grid
		ax.Label.TextStyle.Color = fg
		ax.Tick.Label.Color = fg
		ax.Tick.LineStyle.Color = grid
	}
}

// valueColors maps each value through the trace colour scale. Without an
// explicit range the data extent is used.
func valueColors(vals []float64, m *chart.Marker) []color.Color {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	var scale chart.ColorScale
	if m != nil {
		scale = m.ColorScale
		if m.CMin != nil {
			lo = *m.CMin
		}
		if m.CMax != nil {
			hi = *m.CMax
		}
	}
	out := make([]color.Color, len(vals))
	for i, v := range vals {
		if len(scale) == 0 {
			out[i] = mustParse(chart.Qualitative[0])
			continue
		}
		t := 0.5
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		out[i] = scale.At(t)
	}
	return out
}

func addBars(p *plot.Plot, fig chart.Figure) error {
	tr := fig.Data[0]
	labels := tr.X.Str
	vals := tr.Y.Num
	if len(labels) != len(vals) {
		return fmt.Errorf("bar trace has %d labels and %d values", len(labels), len(vals))
	}
	colors := valueColors(vals, tr.Marker)
	for i, v := range vals {
		b, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(28))
		if err != nil {
			return err
		}
		b.XMin = float64(i)
		b.Color = colors[i]
		b.LineStyle.Width = vg.Length(0)
		p.Add(b)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0

	if len(fig.Layout.Annotations) > 0 {
		xys := make(plotter.XYs, len(fig.Layout.Annotations))
		texts := make([]string, len(fig.Layout.Annotations))
		for i, a := range fig.Layout.Annotations {
			xys[i] = plotter.XY{X: float64(i), Y: a.Y}
			texts[i] = a.Text
		}
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return err
		}
		fg := mustParse(chart.Dark.Foreground)
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Color = fg
			lbl.TextStyle[i].XAlign = draw.XCenter
		}
		lbl.Offset = vg.Point{Y: vg.Points(4)}
		p.Add(lbl)
	}
	return nil
}

func addScatter(p *plot.Plot, fig chart.Figure) error {
	grid := plotter.NewGrid()
	grid.Vertical.Color = mustParse(chart.Dark.Grid)
	grid.Horizontal.Color = mustParse(chart.Dark.Grid)
	p.Add(grid)

	if ax := fig.Layout.XAxis; ax != nil && ax.Type == "log" {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	for _, tr := range fig.Data {
		xys := make(plotter.XYs, 0, tr.X.Len())
		for i := range tr.X.Num {
			if i < len(tr.Y.Num) {
				xys = append(xys, plotter.XY{X: tr.X.Num[i], Y: tr.Y.Num[i]})
			}
		}
		if len(xys) == 0 {
			continue
		}
		if tr.Mode == "lines" {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return err
			}
			l.Width = vg.Points(2)
			if tr.Line != nil && tr.Line.Color != "" {
				l.Color = mustParse(tr.Line.Color)
			}
			p.Add(l)
			p.Legend.Add(tr.Name, l)
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		if tr.Marker != nil {
			if c, ok := tr.Marker.Color.(string); ok {
				s.GlyphStyle.Color = mustParse(c)
			}
		}
		p.Add(s)
		if tr.ShowLegend == nil || *tr.ShowLegend {
			p.Legend.Add(tr.Name, s)
		}
	}
	return nil
}

// scalePalette samples a colour scale for the heat map.
type scalePalette []color.Color

func (s scalePalette) Colors() []color.Color { return s }

func newScalePalette(scale chart.ColorScale, n int) scalePalette {
	out := make(scalePalette, n)
	for i := range out {
		out[i] = scale.At(float64(i) / float64(n-1))
	}
	return out
}

// matrixGrid exposes a row-major matrix as a plotter.GridXYZ with row 0 at
// the top.
type matrixGrid [][]float64

func (g matrixGrid) Dims() (c, r int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

func (g matrixGrid) Z(c, r int) float64 { return g[len(g)-1-r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

func addHeatmap(p *plot.Plot, fig chart.Figure) error {
	tr := fig.Data[0]
	z, ok := tr.Z.([][]float64)
	if !ok || len(z) == 0 {
		return fmt.Errorf("heatmap trace has no matrix")
	}
	scale := tr.ColorScale
	if len(scale) == 0 {
		var err error
		if scale, err = chart.Scale("rdbu"); err != nil {
			return err
		}
	}
	h := plotter.NewHeatMap(matrixGrid(z), newScalePalette(scale, 256))
	if tr.ZMin != nil && tr.ZMax != nil {
		h.Min, h.Max = *tr.ZMin, *tr.ZMax
	}
	p.Add(h)

	names := tr.X.Str
	reversed := make([]string, len(tr.Y.Str))
	for i, n := range tr.Y.Str {
		reversed[len(reversed)-1-i] = n
	}
	p.NominalX(names...)
	p.NominalY(reversed...)

	var xys plotter.XYs
	var texts []string
	for r, row := range z {
		for c, v := range row {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(len(z) - 1 - r)})
			texts = append(texts, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].Color = color.Black
		lbl.TextStyle[i].XAlign = draw.XCenter
		lbl.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(lbl)
	return nil
}

func mustParse(s string) color.Color {
	c, err := chart.ParseColor(s)
	if err != nil {
		return color.Black
	}
	return c
}
