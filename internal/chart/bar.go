package chart

import (
	"fmt"

	"github.com/KaramelBytes/crimedash/internal/analysis"
	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// TopCount is the number of bars in the top and bottom rankings.
const TopCount = 10

// Extreme selects the top or the bottom of a ranking.
type Extreme int

const (
	Highest Extreme = iota
	Lowest
)

func (e Extreme) String() string {
	if e == Lowest {
		return "lowest"
	}
	return "highest"
}

// GDPBars charts the ten countries with the highest or lowest GDP per capita.
func GDPBars(t *dataset.Table, e Extreme, st Style) (Figure, error) {
	id := GDPHighest
	if e == Lowest {
		id = GDPLowest
	}
	top, err := analysis.TopN(t, dataset.ColGDP, TopCount, e == Highest)
	if err != nil {
		return Figure{}, err
	}
	return Bar(id, top, dataset.ColCountry, dataset.ColGDP, st)
}

// CrimeBars charts the ten countries with the highest or lowest criminality.
func CrimeBars(t *dataset.Table, e Extreme, st Style) (Figure, error) {
	id := CrimeHighest
	if e == Lowest {
		id = CrimeLowest
	}
	top, err := analysis.TopN(t, dataset.ColCriminality, TopCount, e == Highest)
	if err != nil {
		return Figure{}, err
	}
	return Bar(id, top, dataset.ColCountry, dataset.ColCriminality, st)
}

// ContinentAverageBar charts the average GDP of each continent from the
// continent aggregate table.
func ContinentAverageBar(agg *dataset.Table, st Style) (Figure, error) {
	return Bar(ContinentAverage, agg, dataset.ColContinent, analysis.ColAvgGDP, st)
}

// Bar builds a bar chart of y against the categorical column x. Bars are
// coloured by their own y value through the style's colour scale and each
// bar carries a value label.
func Bar(id ID, t *dataset.Table, x, y string, st Style) (Figure, error) {
	xs, err := t.Strings(x)
	if err != nil {
		return Figure{}, err
	}
	ys, err := t.Floats(y)
	if err != nil {
		return Figure{}, err
	}
	scale, err := st.scale()
	if err != nil {
		return Figure{}, fmt.Errorf("%s: %w", id, err)
	}
	cmin, cmax := st.bounds()

	colorTitle := st.ColorBarTitle
	if colorTitle == "" {
		colorTitle = y
	}
	xTitle, yTitle := st.XTitle, st.YTitle
	if xTitle == "" {
		xTitle = x
	}
	if yTitle == "" {
		yTitle = y
	}

	layout := Dark.layout(st.Title)
	layout.XAxis = Dark.axis(xTitle)
	layout.YAxis = Dark.axis(yTitle)
	layout.Annotations = barLabels(xs, ys, st.Round)

	trace := Trace{
		Type:          KindBar,
		X:             Text(xs...),
		Y:             Numbers(ys...),
		HoverTemplate: fmt.Sprintf("%s=%%{x}<br>%s=%%{y}<extra></extra>", x, y),
		Marker: &Marker{
			Color:      ys,
			ColorScale: scale,
			CMin:       cmin,
			CMax:       cmax,
			ShowScale:  true,
			ColorBar:   &ColorBar{Title: &Title{Text: colorTitle}},
		},
		ShowLegend: ptr(false),
	}
	return Figure{
		ID:     id,
		Data:   []Trace{trace},
		Layout: layout,
		Fields: Fields{X: x, Y: y, Color: y},
	}, nil
}
