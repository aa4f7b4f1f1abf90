package analysis

import (
	"fmt"
	"math"
	"testing"

	"github.com/KaramelBytes/crimedash/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticTable is the five-country table used across the analysis tests.
func syntheticTable(t *testing.T) *dataset.Table {
	t.Helper()
	gdp := []float64{100, 200, 300, 400, 500}
	logs := make([]float64, len(gdp))
	for i, g := range gdp {
		logs[i] = math.Log(g)
	}
	tbl, err := dataset.NewTable(
		dataset.StringColumn(dataset.ColCountry, "A", "B", "C", "D", "E"),
		dataset.StringColumn(dataset.ColCode, "AAA", "BBB", "CCC", "DDD", "EEE"),
		dataset.StringColumn(dataset.ColContinent, "Africa", "Europe", "Africa", "Asia", "Europe"),
		dataset.FloatColumn(dataset.ColGDP, gdp...),
		dataset.FloatColumn(dataset.ColCriminality, 8, 1, 5, 5, 3),
		dataset.FloatColumn(dataset.ColResilience, 2, 9, 4, 6, 7),
		dataset.FloatColumn(dataset.ColLogGDP, logs...),
	)
	require.NoError(t, err)
	return tbl
}

// widerTable has 25 rows with distinct GDP values in shuffled order.
func widerTable(t *testing.T) *dataset.Table {
	t.Helper()
	n := 25
	names := make([]string, n)
	codes := make([]string, n)
	continents := make([]string, n)
	gdp := make([]float64, n)
	crime := make([]float64, n)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("Country %02d", i)
		codes[i] = fmt.Sprintf("C%02d", i)
		continents[i] = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}[i%5]
		gdp[i] = float64((i*7)%n+1) * 1000
		crime[i] = float64(i%9) + 1
		res[i] = 10 - float64(i%7)
	}
	tbl, err := dataset.NewTable(
		dataset.StringColumn(dataset.ColCountry, names...),
		dataset.StringColumn(dataset.ColCode, codes...),
		dataset.StringColumn(dataset.ColContinent, continents...),
		dataset.FloatColumn(dataset.ColGDP, gdp...),
		dataset.FloatColumn(dataset.ColCriminality, crime...),
		dataset.FloatColumn(dataset.ColResilience, res...),
	)
	require.NoError(t, err)
	return tbl
}

func TestTopN(t *testing.T) {
	tbl := syntheticTable(t)

	top, err := TopN(tbl, dataset.ColGDP, 3, true)
	require.NoError(t, err)
	gdp, err := top.Floats(dataset.ColGDP)
	require.NoError(t, err)
	assert.Equal(t, []float64{500, 400, 300}, gdp)

	bottom, err := TopN(tbl, dataset.ColGDP, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 5, bottom.Len())
	gdp, _ = bottom.Floats(dataset.ColGDP)
	assert.Equal(t, []float64{100, 200, 300, 400, 500}, gdp)

	none, err := TopN(tbl, dataset.ColGDP, -1, true)
	require.NoError(t, err)
	assert.Equal(t, 0, none.Len())
}

func TestTopNStableTies(t *testing.T) {
	tbl := syntheticTable(t)
	// C and D share criminality 5; C comes first in the table.
	top, err := TopN(tbl, dataset.ColCriminality, 3, true)
	require.NoError(t, err)
	names, _ := top.Strings(dataset.ColCountry)
	assert.Equal(t, []string{"A", "C", "D"}, names)

	bottom, err := TopN(tbl, dataset.ColCriminality, 4, false)
	require.NoError(t, err)
	names, _ = bottom.Strings(dataset.ColCountry)
	assert.Equal(t, []string{"B", "E", "C", "D"}, names)
}

func TestTopNRejectsTextColumn(t *testing.T) {
	_, err := TopN(syntheticTable(t), dataset.ColCountry, 3, true)
	var te *dataset.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, dataset.ColCountry, te.Column)
}

func TestTopNPropertiesOnWiderTable(t *testing.T) {
	tbl := widerTable(t)
	top, err := TopN(tbl, dataset.ColGDP, 10, true)
	require.NoError(t, err)
	bottom, err := TopN(tbl, dataset.ColGDP, 10, false)
	require.NoError(t, err)
	require.Equal(t, 10, top.Len())
	require.Equal(t, 10, bottom.Len())

	topVals, _ := top.Floats(dataset.ColGDP)
	for i := 1; i < len(topVals); i++ {
		assert.GreaterOrEqual(t, topVals[i-1], topVals[i])
	}

	all, _ := tbl.Strings(dataset.ColCountry)
	members := make(map[string]bool, len(all))
	for _, n := range all {
		members[n] = true
	}
	topNames, _ := top.Strings(dataset.ColCountry)
	bottomNames, _ := bottom.Strings(dataset.ColCountry)
	seen := map[string]bool{}
	for _, n := range topNames {
		assert.True(t, members[n], n)
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
	for _, n := range bottomNames {
		assert.False(t, seen[n], "%s in both top and bottom", n)
	}
}

func TestAggregateByContinent(t *testing.T) {
	tbl := syntheticTable(t)
	agg, err := AggregateByContinent(tbl)
	require.NoError(t, err)

	continents, _ := agg.Strings(dataset.ColContinent)
	counts, _ := agg.Floats(ColCountryCount)
	sums, _ := agg.Floats(ColTotalGDP)
	avgs, _ := agg.Floats(ColAvgGDP)
	assert.Equal(t, []string{"Africa", "Europe", "Asia"}, continents)
	assert.Equal(t, []float64{2, 2, 1}, counts)
	assert.Equal(t, []float64{400, 700, 400}, sums)
	assert.Equal(t, []float64{200, 350, 400}, avgs)

	total := 0.0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, float64(tbl.Len()), total)
}

func TestAggregateAverageWithinMemberRange(t *testing.T) {
	tbl := widerTable(t)
	agg, err := AggregateByContinent(tbl)
	require.NoError(t, err)

	continents, _ := tbl.Strings(dataset.ColContinent)
	gdp, _ := tbl.Floats(dataset.ColGDP)
	lo := map[string]float64{}
	hi := map[string]float64{}
	for i, c := range continents {
		if v, ok := lo[c]; !ok || gdp[i] < v {
			lo[c] = gdp[i]
		}
		if v, ok := hi[c]; !ok || gdp[i] > v {
			hi[c] = gdp[i]
		}
	}
	names, _ := agg.Strings(dataset.ColContinent)
	avgs, _ := agg.Floats(ColAvgGDP)
	for i, c := range names {
		assert.GreaterOrEqual(t, avgs[i], lo[c], c)
		assert.LessOrEqual(t, avgs[i], hi[c], c)
	}
}

func TestAggregateEmptyTable(t *testing.T) {
	empty, err := TopN(syntheticTable(t), dataset.ColGDP, 0, true)
	require.NoError(t, err)
	agg, err := AggregateByContinent(empty)
	require.NoError(t, err)
	assert.Equal(t, 0, agg.Len())
	assert.True(t, agg.HasColumn(ColAvgGDP))
}

func TestRanks(t *testing.T) {
	tests := []struct {
		name      string
		in        []float64
		ascending bool
		want      []float64
	}{
		{"ties averaged", []float64{8, 1, 5, 5, 3}, true, []float64{5, 1, 3.5, 3.5, 2}},
		{"descending", []float64{8, 1, 5, 5, 3}, false, []float64{1, 5, 2.5, 2.5, 4}},
		{"all equal", []float64{2, 2, 2}, true, []float64{2, 2, 2}},
		{"empty", nil, true, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ranks(tt.in, tt.ascending))
		})
	}
}

func TestRankRelation(t *testing.T) {
	ranked, err := RankRelation(syntheticTable(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		dataset.ColCode, dataset.ColCriminality, dataset.ColResilience, dataset.ColCountry,
		dataset.ColCrimeRank, dataset.ColResilienceRank,
	}, ranked.Columns())

	crimeRank, _ := ranked.Floats(dataset.ColCrimeRank)
	assert.Equal(t, []float64{5, 1, 3.5, 3.5, 2}, crimeRank)
	resRank, _ := ranked.Floats(dataset.ColResilienceRank)
	assert.Equal(t, []float64{5, 1, 4, 3, 2}, resRank)

	sum := 0.0
	for _, r := range crimeRank {
		sum += r
	}
	assert.Equal(t, 15.0, sum) // 1+2+3+4+5

	crime, _ := ranked.Floats(dataset.ColCriminality)
	for a := range crime {
		for b := range crime {
			if crime[a] > crime[b] {
				assert.GreaterOrEqual(t, crimeRank[a], crimeRank[b])
			}
		}
	}
}

func TestCorrelation(t *testing.T) {
	tbl := syntheticTable(t)

	self, err := Correlation(tbl, []string{dataset.ColGDP, dataset.ColGDP})
	require.NoError(t, err)
	assert.Equal(t, 1.0, self.Values[0][1])

	m, err := Correlation(tbl, SummaryColumns)
	require.NoError(t, err)
	require.Len(t, m.Values, 3)
	for i := range m.Values {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range m.Values {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
			assert.LessOrEqual(t, math.Abs(m.Values[i][j]), 1.0)
		}
	}
	// Resilience ranks ascending [1 5 2 3 4] against GDP [1 2 3 4 5]: rho = 0.4.
	r, ok := m.At(dataset.ColResilience, dataset.ColGDP)
	require.True(t, ok)
	assert.Equal(t, 0.4, r)
}

func TestCorrelationZeroVariance(t *testing.T) {
	tbl, err := syntheticTable(t).WithFloats("flat", []float64{1, 1, 1, 1, 1})
	require.NoError(t, err)
	_, err = Correlation(tbl, []string{dataset.ColGDP, "flat"})
	var de *dataset.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "flat", de.Column)
}

func TestCorrelationArguments(t *testing.T) {
	tbl := syntheticTable(t)
	_, err := Correlation(tbl, []string{dataset.ColGDP})
	assert.Error(t, err)

	_, err = Correlation(tbl, []string{dataset.ColGDP, dataset.ColCountry})
	var te *dataset.TypeError
	assert.ErrorAs(t, err, &te)
}

func TestFitOLS(t *testing.T) {
	fit, err := FitOLS([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9}, "x")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)

	xs, ys := fit.Line([]float64{3, 1, 2})
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.InDeltaSlice(t, []float64{3, 5, 7}, ys, 1e-9)

	xs, ys = fit.Line([]float64{2, 1, 2})
	assert.Equal(t, []float64{1, 2, 2}, xs)
	assert.InDeltaSlice(t, []float64{3, 5, 5}, ys, 1e-9)

	_, err = FitOLS([]float64{2, 2, 2}, []float64{1, 2, 3}, "Resilience")
	var de *dataset.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Resilience", de.Column)
}

func TestSummarizeMarkdown(t *testing.T) {
	rep, err := Summarize("merged_data.xlsx", syntheticTable(t))
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Rows)
	require.Len(t, rep.Rankings, 4)
	assert.Equal(t, "E", rep.Rankings[0].Entries[0].Country)
	assert.Equal(t, "Asia", rep.Continents[0].Continent)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: merged_data.xlsx",
		"Rows: 5",
		"[GROUP-BY SUMMARY]",
		"Continent=Europe (n=2)",
		"[HIGHEST GDP PER CAPITA]",
		"[CORRELATIONS]",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "[NOTES]")
}
