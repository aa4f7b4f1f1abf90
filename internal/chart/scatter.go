package chart

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/crimedash/internal/analysis"
	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// GDPCrimeScatter plots criminality against GDP per capita on a log x axis,
// with one trace per continent so the legend doubles as the colour key.
func GDPCrimeScatter(t *dataset.Table, st Style) (Figure, error) {
	countries, err := t.Strings(dataset.ColCountry)
	if err != nil {
		return Figure{}, err
	}
	continents, err := t.Strings(dataset.ColContinent)
	if err != nil {
		return Figure{}, err
	}
	gdp, err := t.Floats(dataset.ColGDP)
	if err != nil {
		return Figure{}, err
	}
	crime, err := t.Floats(dataset.ColCriminality)
	if err != nil {
		return Figure{}, err
	}

	var order []string
	rows := make(map[string][]int)
	for i, c := range continents {
		if _, ok := rows[c]; !ok {
			order = append(order, c)
		}
		rows[c] = append(rows[c], i)
	}

	traces := make([]Trace, 0, len(order))
	for n, c := range order {
		idx := rows[c]
		xs := make([]float64, len(idx))
		ys := make([]float64, len(idx))
		custom := make([][]any, len(idx))
		for k, i := range idx {
			xs[k], ys[k] = gdp[i], crime[i]
			custom[k] = []any{countries[i]}
		}
		traces = append(traces, Trace{
			Type:       KindScatter,
			Mode:       "markers",
			Name:       c,
			X:          Numbers(xs...),
			Y:          Numbers(ys...),
			CustomData: custom,
			HoverTemplate: fmt.Sprintf("<b>%%{customdata[0]}</b><br>%s=%s<br>%s=%%{x:,}<br>%s=%%{y}<extra></extra>",
				dataset.ColContinent, c, dataset.ColGDP, dataset.ColCriminality),
			Marker: &Marker{Color: Qualitative[n%len(Qualitative)]},
		})
	}

	layout := Dark.layout(st.Title)
	layout.XAxis = Dark.axis(orDefault(st.XTitle, dataset.ColGDP))
	layout.XAxis.Type = "log"
	layout.YAxis = Dark.axis(orDefault(st.YTitle, dataset.ColCriminality))
	layout.Legend = &Legend{Title: &Title{Text: dataset.ColContinent}}

	return Figure{
		ID:     GDPCrimeScatterID,
		Data:   traces,
		Layout: layout,
		Fields: Fields{
			X:     dataset.ColGDP,
			Y:     dataset.ColCriminality,
			Color: dataset.ColContinent,
			Hover: []string{dataset.ColCountry},
		},
	}, nil
}

// CrimeResilienceScatter plots criminality against resilience from the rank
// table and overlays an ordinary least squares trend line.
func CrimeResilienceScatter(ranked *dataset.Table, st Style) (Figure, error) {
	countries, err := ranked.Strings(dataset.ColCountry)
	if err != nil {
		return Figure{}, err
	}
	res, err := ranked.Floats(dataset.ColResilience)
	if err != nil {
		return Figure{}, err
	}
	crime, err := ranked.Floats(dataset.ColCriminality)
	if err != nil {
		return Figure{}, err
	}
	crimeRank, err := ranked.Floats(dataset.ColCrimeRank)
	if err != nil {
		return Figure{}, err
	}
	resRank, err := ranked.Floats(dataset.ColResilienceRank)
	if err != nil {
		return Figure{}, err
	}
	fit, err := analysis.FitOLS(res, crime, dataset.ColResilience)
	if err != nil {
		return Figure{}, fmt.Errorf("%s: %w", CrimeResilienceScatterID, err)
	}

	custom := make([][]any, len(countries))
	for i := range countries {
		custom[i] = []any{countries[i], crimeRank[i], resRank[i]}
	}
	points := Trace{
		Type:       KindScatter,
		Mode:       "markers",
		Name:       "Countries",
		X:          Numbers(res...),
		Y:          Numbers(crime...),
		CustomData: custom,
		HoverTemplate: fmt.Sprintf("<b>%%{customdata[0]}</b><br>%s=%%{x}<br>%s=%%{y}<br>%s=%%{customdata[1]}<br>%s=%%{customdata[2]}<extra></extra>",
			dataset.ColResilience, dataset.ColCriminality, dataset.ColCrimeRank, dataset.ColResilienceRank),
		Marker:     &Marker{Color: Qualitative[0]},
		ShowLegend: ptr(false),
	}

	// R² is undefined when criminality is constant.
	name := "OLS trend"
	hover := fmt.Sprintf("<b>OLS trendline</b><br>%s = %.4f * %s + %.4f",
		dataset.ColCriminality, fit.Slope, dataset.ColResilience, fit.Intercept)
	if !math.IsNaN(fit.RSquared) {
		name += fmt.Sprintf(" (R²=%.3f)", fit.RSquared)
		hover += fmt.Sprintf("<br>R<sup>2</sup>=%.6f", fit.RSquared)
	}
	lx, ly := fit.Line(res)
	trend := Trace{
		Type:          KindScatter,
		Mode:          "lines",
		Name:          name,
		X:             Numbers(lx...),
		Y:             Numbers(ly...),
		HoverTemplate: hover + "<extra></extra>",
		Line:          &Line{Color: Qualitative[0], Width: 2},
	}

	layout := Dark.layout(st.Title)
	layout.XAxis = Dark.axis(orDefault(st.XTitle, dataset.ColResilience))
	layout.YAxis = Dark.axis(orDefault(st.YTitle, dataset.ColCriminality))

	return Figure{
		ID:     CrimeResilienceScatterID,
		Data:   []Trace{points, trend},
		Layout: layout,
		Fields: Fields{
			X:     dataset.ColResilience,
			Y:     dataset.ColCriminality,
			Hover: []string{dataset.ColCountry, dataset.ColCrimeRank, dataset.ColResilienceRank},
		},
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
