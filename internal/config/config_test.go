package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/crimedash/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, "127.0.0.1:8050", c.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dataset: data/*.xlsx
sheet_name: Merged
port: 9000
columns:
  gdp: GDP per capita
`), 0o644))
	t.Setenv("CRIMEDASH_HOST", "0.0.0.0")
	t.Setenv("CRIMEDASH_COLUMNS_RESILIENCE", "Resilience Index")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/*.xlsx", c.Dataset)
	assert.Equal(t, "0.0.0.0:9000", c.Addr())
	assert.Equal(t, "GDP per capita", c.Columns.GDP)
	assert.Equal(t, "Resilience Index", c.Columns.Resilience)
	assert.Equal(t, dataset.ColCountry, c.Columns.Country)

	opt := c.LoadOptions()
	assert.Equal(t, "Merged", opt.SheetName)
	assert.Equal(t, 1, opt.SheetIndex)
	assert.Equal(t, "GDP per capita", opt.Schema.GDP)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 70000\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid port")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := Defaults()
	c.Port = 8100
	c.StylesFile = "styles.toml"
	require.NoError(t, Save(c, path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
