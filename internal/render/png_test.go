package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/KaramelBytes/crimedash/internal/analysis"
	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/KaramelBytes/crimedash/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func figures(t *testing.T) map[chart.ID]chart.Figure {
	t.Helper()
	gdp := []float64{900, 2500, 12000, 48000, 95000}
	logs := make([]float64, len(gdp))
	for i, g := range gdp {
		logs[i] = math.Log(g)
	}
	tbl, err := dataset.NewTable(
		dataset.StringColumn(dataset.ColCountry, "A", "B", "C", "D", "E"),
		dataset.StringColumn(dataset.ColCode, "AAA", "BBB", "CCC", "DDD", "EEE"),
		dataset.StringColumn(dataset.ColContinent, "Africa", "Asia", "Americas", "Europe", "Europe"),
		dataset.FloatColumn(dataset.ColGDP, gdp...),
		dataset.FloatColumn(dataset.ColCriminality, 7.1, 6.4, 5.9, 3.2, 2.5),
		dataset.FloatColumn(dataset.ColResilience, 2.1, 3.5, 4.4, 7.9, 8.3),
		dataset.FloatColumn(dataset.ColLogGDP, logs...),
	)
	require.NoError(t, err)
	styles := chart.DefaultStyles()

	out := map[chart.ID]chart.Figure{}
	bar, err := chart.GDPBars(tbl, chart.Highest, styles.Get(chart.GDPHighest))
	require.NoError(t, err)
	out[bar.ID] = bar
	scatter, err := chart.GDPCrimeScatter(tbl, styles.Get(chart.GDPCrimeScatterID))
	require.NoError(t, err)
	out[scatter.ID] = scatter
	ranked, err := analysis.RankRelation(tbl)
	require.NoError(t, err)
	trend, err := chart.CrimeResilienceScatter(ranked, styles.Get(chart.CrimeResilienceScatterID))
	require.NoError(t, err)
	out[trend.ID] = trend
	corr, err := analysis.Correlation(tbl, analysis.SummaryColumns)
	require.NoError(t, err)
	heat, err := chart.CorrelationHeatmap(corr, styles.Get(chart.CorrelationHeatmapID))
	require.NoError(t, err)
	out[heat.ID] = heat
	globe, err := chart.GDPGlobe(tbl, styles.Get(chart.GDPGlobeID))
	require.NoError(t, err)
	out[globe.ID] = globe
	return out
}

func TestPNG(t *testing.T) {
	figs := figures(t)
	for _, id := range []chart.ID{chart.GDPHighest, chart.GDPCrimeScatterID, chart.CrimeResilienceScatterID, chart.CorrelationHeatmapID} {
		t.Run(string(id), func(t *testing.T) {
			fig := figs[id]
			require.True(t, Supported(fig))
			b, err := PNG(fig, Options{})
			require.NoError(t, err)
			img, err := png.Decode(bytes.NewReader(b))
			require.NoError(t, err)
			assert.Greater(t, img.Bounds().Dx(), 0)
		})
	}
}

func TestPlotKeepsTitles(t *testing.T) {
	p, err := Plot(figures(t)[chart.GDPHighest])
	require.NoError(t, err)
	assert.Equal(t, "Top 10 Countries with the highest GDP Per Capita", p.Title.Text)
	assert.Equal(t, "GDP per Capita in US$", p.Y.Label.Text)
}

func TestMapsUnsupported(t *testing.T) {
	globe := figures(t)[chart.GDPGlobeID]
	assert.False(t, Supported(globe))
	_, err := PNG(globe, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestValueColors(t *testing.T) {
	scale, err := chart.Scale("viridis")
	require.NoError(t, err)
	lo, hi := 0.0, 10.0
	cols := valueColors([]float64{-5, 0, 10, 20}, &chart.Marker{ColorScale: scale, CMin: &lo, CMax: &hi})
	assert.Equal(t, scale.At(0), cols[0])
	assert.Equal(t, scale.At(0), cols[1])
	assert.Equal(t, scale.At(1), cols[2])
	assert.Equal(t, scale.At(1), cols[3])
}

func TestMatrixGrid(t *testing.T) {
	g := matrixGrid{{1, 2}, {3, 4}, {5, 6}}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)
	assert.Equal(t, 5.0, g.Z(0, 0))
	assert.Equal(t, 2.0, g.Z(1, 2))
}
