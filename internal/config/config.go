package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/crimedash/internal/dashboard"
	"github.com/KaramelBytes/crimedash/internal/dataset"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "CRIMEDASH"
	dirName   = ".crimedash"

	DefaultDataset   = "data/merged_data.xlsx"
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 8050
	DefaultOutputDir = "dist"
)

// Global configuration structure.
type Global struct {
	Dataset    string         `mapstructure:"dataset" yaml:"dataset"`
	SheetName  string         `mapstructure:"sheet_name" yaml:"sheet_name,omitempty"`
	SheetIndex int            `mapstructure:"sheet_index" yaml:"sheet_index"`
	Columns    dataset.Schema `mapstructure:"columns" yaml:"columns"`
	StylesFile string         `mapstructure:"styles_file" yaml:"styles_file,omitempty"`

	// HTTP server
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port"`
	PageTitle string `mapstructure:"page_title" yaml:"page_title"`
	PlotlyURL string `mapstructure:"plotly_url" yaml:"plotly_url"`

	// Static export
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Addr returns host:port for the dashboard server.
func (c *Global) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// LoadOptions returns the dataset options described by the configuration.
func (c *Global) LoadOptions() dataset.LoadOptions {
	opt := dataset.DefaultLoadOptions()
	opt.SheetName = c.SheetName
	if c.SheetIndex > 0 {
		opt.SheetIndex = c.SheetIndex
	}
	opt.Schema = c.Columns
	return opt
}

// Validate checks values that viper cannot type-check.
func (c *Global) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset is not set")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SheetIndex < 0 {
		return fmt.Errorf("invalid sheet_index: %d", c.SheetIndex)
	}
	return nil
}

// Path returns the config file used when cfgFile is empty:
// ~/.crimedash/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.crimedash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Global {
	return &Global{
		Dataset:    DefaultDataset,
		SheetIndex: 1,
		Columns:    dataset.DefaultSchema(),
		Host:       DefaultHost,
		Port:       DefaultPort,
		PageTitle:  dashboard.DefaultTitle,
		PlotlyURL:  dashboard.DefaultPlotlyURL,
		OutputDir:  DefaultOutputDir,
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("dataset", d.Dataset)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("styles_file", "")
	v.SetDefault("host", d.Host)
	v.SetDefault("port", d.Port)
	v.SetDefault("page_title", d.PageTitle)
	v.SetDefault("plotly_url", d.PlotlyURL)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("columns.country", d.Columns.Country)
	v.SetDefault("columns.code", d.Columns.Code)
	v.SetDefault("columns.continent", d.Columns.Continent)
	v.SetDefault("columns.gdp", d.Columns.GDP)
	v.SetDefault("columns.criminality", d.Columns.Criminality)
	v.SetDefault("columns.resilience", d.Columns.Resilience)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
