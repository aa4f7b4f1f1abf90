package chart

import (
	"fmt"

	"github.com/KaramelBytes/crimedash/internal/analysis"
)

// CorrelationHeatmap draws the correlation matrix with each cell labelled by
// its coefficient. Rows run top to bottom in column order.
func CorrelationHeatmap(m *analysis.CorrMatrix, st Style) (Figure, error) {
	if m == nil || len(m.Columns) == 0 {
		return Figure{}, fmt.Errorf("%s: empty correlation matrix", CorrelationHeatmapID)
	}
	scale, err := st.scale()
	if err != nil {
		return Figure{}, fmt.Errorf("%s: %w", CorrelationHeatmapID, err)
	}
	zmin, zmax := st.bounds()

	z := make([][]float64, len(m.Values))
	for i, row := range m.Values {
		z[i] = append([]float64(nil), row...)
	}
	names := append([]string(nil), m.Columns...)

	layout := Dark.layout(st.Title)
	layout.XAxis = Dark.axis(st.XTitle)
	layout.YAxis = Dark.axis(st.YTitle)
	layout.YAxis.AutoRange = "reversed"

	trace := Trace{
		Type:          KindHeatmap,
		X:             Text(names...),
		Y:             Text(names...),
		Z:             z,
		TextTemplate:  "%{z}",
		HoverTemplate: "%{y} ~ %{x}<br>rho=%{z}<extra></extra>",
		ColorScale:    scale,
		ZMin:          zmin,
		ZMax:          zmax,
	}
	if st.ColorBarTitle != "" {
		trace.ColorBar = &ColorBar{Title: &Title{Text: st.ColorBarTitle}}
	}
	return Figure{
		ID:     CorrelationHeatmapID,
		Data:   []Trace{trace},
		Layout: layout,
		Fields: Fields{Hover: names},
	}, nil
}
