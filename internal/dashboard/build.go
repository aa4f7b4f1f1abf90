package dashboard

import (
	"fmt"

	"github.com/KaramelBytes/crimedash/internal/analysis"
	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/KaramelBytes/crimedash/internal/dataset"
)

type builder func(t *dataset.Table, st chart.Style) (chart.Figure, error)

// builders maps each chart to the function producing it from the base table.
// Derived tables are recomputed for every call.
var builders = map[chart.ID]builder{
	chart.GDPHighest: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.GDPBars(t, chart.Highest, st)
	},
	chart.GDPLowest: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.GDPBars(t, chart.Lowest, st)
	},
	chart.ContinentAverage: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		agg, err := analysis.AggregateByContinent(t)
		if err != nil {
			return chart.Figure{}, err
		}
		return chart.ContinentAverageBar(agg, st)
	},
	chart.GDPGlobeID: chart.GDPGlobe,
	chart.CrimeHighest: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.CrimeBars(t, chart.Highest, st)
	},
	chart.CrimeLowest: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.CrimeBars(t, chart.Lowest, st)
	},
	chart.CrimeMap: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.Choropleth(t, chart.MapCriminality, st)
	},
	chart.ResilienceMap: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		return chart.Choropleth(t, chart.MapResilience, st)
	},
	chart.GDPCrimeScatterID: chart.GDPCrimeScatter,
	chart.CrimeResilienceScatterID: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		ranked, err := analysis.RankRelation(t)
		if err != nil {
			return chart.Figure{}, err
		}
		return chart.CrimeResilienceScatter(ranked, st)
	},
	chart.CorrelationHeatmapID: func(t *dataset.Table, st chart.Style) (chart.Figure, error) {
		m, err := analysis.Correlation(t, analysis.SummaryColumns)
		if err != nil {
			return chart.Figure{}, err
		}
		return chart.CorrelationHeatmap(m, st)
	},
}

// Build produces every chart in dashboard order. The first failure aborts the
// build and is returned wrapped with the chart ID.
func Build(t *dataset.Table, styles chart.Styles) ([]chart.Figure, error) {
	figs := make([]chart.Figure, 0, len(chart.Order))
	for _, id := range chart.Order {
		fig, err := BuildOne(t, id, styles.Get(id))
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

// BuildOne produces a single chart.
func BuildOne(t *dataset.Table, id chart.ID, st chart.Style) (chart.Figure, error) {
	b, ok := builders[id]
	if !ok {
		return chart.Figure{}, fmt.Errorf("unknown chart %q", id)
	}
	fig, err := b(t, st)
	if err != nil {
		return chart.Figure{}, fmt.Errorf("build %s: %w", id, err)
	}
	return fig, nil
}
