package chart

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// MapField selects the index a choropleth colours countries by.
type MapField int

const (
	MapCriminality MapField = iota
	MapResilience
)

func (f MapField) column() string {
	if f == MapResilience {
		return dataset.ColResilience
	}
	return dataset.ColCriminality
}

func (f MapField) id() ID {
	if f == MapResilience {
		return ResilienceMap
	}
	return CrimeMap
}

// Globe colour bar ticks, in US dollars.
var globeTicks = []struct {
	Value float64
	Label string
}{
	{100, "0.1k"},
	{1000, "1k"},
	{10000, "10k"},
	{100000, "100k"},
}

// Choropleth draws a world map coloured by criminality or resilience.
func Choropleth(t *dataset.Table, f MapField, st Style) (Figure, error) {
	col := f.column()
	z, err := t.Floats(col)
	if err != nil {
		return Figure{}, err
	}
	title := st.ColorBarTitle
	if title == "" {
		title = col
	}
	return worldMap(f.id(), t, col, z, st, &ColorBar{Title: &Title{Text: title}})
}

// GDPGlobe draws an orthographic globe coloured by log GDP per capita. The
// colour bar is labelled in dollars.
func GDPGlobe(t *dataset.Table, st Style) (Figure, error) {
	z, err := t.Floats(dataset.ColLogGDP)
	if err != nil {
		return Figure{}, err
	}
	cb := &ColorBar{}
	if st.ColorBarTitle != "" {
		cb.Title = &Title{Text: st.ColorBarTitle}
	}
	for _, tk := range globeTicks {
		cb.TickVals = append(cb.TickVals, math.Log(tk.Value))
		cb.TickText = append(cb.TickText, tk.Label)
	}
	return worldMap(GDPGlobeID, t, dataset.ColLogGDP, z, st, cb)
}

// worldMap joins rows to countries by ISO3 code. The hover label shows the
// country name, the GDP per capita and the coloured value unless it is the
// log GDP; the code itself is never shown.
func worldMap(id ID, t *dataset.Table, col string, z []float64, st Style, cb *ColorBar) (Figure, error) {
	codes, err := t.Strings(dataset.ColCode)
	if err != nil {
		return Figure{}, err
	}
	countries, err := t.Strings(dataset.ColCountry)
	if err != nil {
		return Figure{}, err
	}
	gdp, err := t.Floats(dataset.ColGDP)
	if err != nil {
		return Figure{}, err
	}
	scale, err := st.scale()
	if err != nil {
		return Figure{}, fmt.Errorf("%s: %w", id, err)
	}
	zmin, zmax := st.bounds()

	custom := make([][]any, len(countries))
	for i := range countries {
		custom[i] = []any{countries[i], gdp[i]}
	}
	hover := "<b>%{customdata[0]}</b><br>" + dataset.ColGDP + "=%{customdata[1]:,}"
	hoverFields := []string{dataset.ColCountry, dataset.ColGDP}
	if col != dataset.ColLogGDP {
		hover += "<br>" + col + "=%{z}"
		hoverFields = append(hoverFields, col)
	}
	hover += "<extra></extra>"

	projection := st.Projection
	if projection == "" {
		projection = "natural earth"
	}
	layout := Dark.layout(st.Title)
	layout.Geo = Dark.geo(projection)

	trace := Trace{
		Type:          KindChoropleth,
		Locations:     codes,
		LocationMode:  "ISO-3",
		Z:             z,
		CustomData:    custom,
		HoverTemplate: hover,
		ColorScale:    scale,
		ZMin:          zmin,
		ZMax:          zmax,
		ColorBar:      cb,
	}
	return Figure{
		ID:     id,
		Data:   []Trace{trace},
		Layout: layout,
		Fields: Fields{Location: dataset.ColCode, Color: col, Hover: hoverFields},
	}, nil
}
