package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/KaramelBytes/crimedash/internal/dashboard"
	"github.com/KaramelBytes/crimedash/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProgress struct {
	total, steps int
	finished     bool
}

func (c *countingProgress) Start(n int) { c.total = n }
func (c *countingProgress) Step(string) { c.steps++ }
func (c *countingProgress) Finish()     { c.finished = true }

func sampleFigures(t *testing.T) []chart.Figure {
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
	figs, err := dashboard.Build(tbl, chart.DefaultStyles())
	require.NoError(t, err)
	return figs
}

func TestRunWritesEveryArtifact(t *testing.T) {
	dir := t.TempDir()
	figs := sampleFigures(t)
	prog := &countingProgress{}

	res, err := Run(figs, Options{Dir: dir, PNG: true}, prog, nil)
	require.NoError(t, err)

	assert.Len(t, res.JSON, len(chart.Order))
	for _, id := range chart.Order {
		b, err := os.ReadFile(filepath.Join(dir, "charts", string(id)+".json"))
		require.NoError(t, err)
		var fig map[string]any
		require.NoError(t, json.Unmarshal(b, &fig))
		assert.Equal(t, string(id), fig["id"])
	}

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), res.BuildID)

	assert.ElementsMatch(t, []chart.ID{chart.GDPGlobeID, chart.CrimeMap, chart.ResilienceMap}, res.Skipped)
	assert.Len(t, res.PNG, len(chart.Order)-3)
	for _, rel := range res.PNG {
		b, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), rel)
	}

	assert.Equal(t, 2*len(figs)+1, prog.total)
	assert.Equal(t, prog.total, prog.steps)
	assert.True(t, prog.finished)
}

func TestRunWithoutPNG(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(sampleFigures(t), Options{Dir: dir}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.PNG)
	_, err = os.Stat(filepath.Join(dir, "png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunNeedsDir(t *testing.T) {
	_, err := Run(nil, Options{}, nil, nil)
	assert.Error(t, err)
}

func TestNewProgressNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Start(3)
	p.Step("x")
	p.Finish()
	assert.Empty(t, buf.String())
}
