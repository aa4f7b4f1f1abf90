package analysis

import (
	"math"

	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// Columns of the continent aggregate table.
const (
	ColCountryCount = "Country Count"
	ColTotalGDP     = "Total GDP"
	ColAvgGDP       = "Avg GDP"
)

// AggregateByContinent groups the base table by continent and returns one row
// per continent with the country count, summed GDP and average GDP (sum/count
// rounded to 2 decimals). Continents appear in order of first appearance. An
// empty input yields an empty table with the same columns.
func AggregateByContinent(t *dataset.Table) (*dataset.Table, error) {
	continents, err := t.Strings(dataset.ColContinent)
	if err != nil {
		return nil, err
	}
	gdp, err := t.Floats(dataset.ColGDP)
	if err != nil {
		return nil, err
	}

	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	var order []string
	for i, c := range continents {
		g := groups[c]
		if g == nil {
			g = &acc{}
			groups[c] = g
			order = append(order, c)
		}
		g.count++
		g.sum += gdp[i]
	}

	counts := make([]float64, len(order))
	sums := make([]float64, len(order))
	avgs := make([]float64, len(order))
	for i, c := range order {
		g := groups[c]
		counts[i] = float64(g.count)
		sums[i] = g.sum
		avgs[i] = RoundTo2(g.sum / float64(g.count))
	}
	return dataset.NewTable(
		dataset.StringColumn(dataset.ColContinent, order...),
		dataset.FloatColumn(ColCountryCount, counts...),
		dataset.FloatColumn(ColTotalGDP, sums...),
		dataset.FloatColumn(ColAvgGDP, avgs...),
	)
}

// RoundTo2 rounds to two decimal places, half away from zero.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
