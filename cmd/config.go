package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	cfgpkg "github.com/KaramelBytes/crimedash/internal/config"
	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set crimedash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfgpkg.Path(cfgFile)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err := cfgpkg.Save(cfgpkg.Defaults(), cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config written: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}

func printConfig(w io.Writer, c *cfgpkg.Global) {
	fmt.Fprintf(w, "dataset: %s\n", c.Dataset)
	if c.SheetName != "" {
		fmt.Fprintf(w, "sheet_name: %s\n", c.SheetName)
	}
	fmt.Fprintf(w, "sheet_index: %d\n", c.SheetIndex)
	if c.StylesFile != "" {
		fmt.Fprintf(w, "styles_file: %s\n", c.StylesFile)
	}
	fmt.Fprintf(w, "host: %s\n", c.Host)
	fmt.Fprintf(w, "port: %d\n", c.Port)
	fmt.Fprintf(w, "page_title: %s\n", c.PageTitle)
	fmt.Fprintf(w, "plotly_url: %s\n", c.PlotlyURL)
	fmt.Fprintf(w, "output_dir: %s\n", c.OutputDir)
	fmt.Fprintln(w, "columns:")
	fmt.Fprintf(w, "  country: %s\n", c.Columns.Country)
	fmt.Fprintf(w, "  code: %s\n", c.Columns.Code)
	fmt.Fprintf(w, "  continent: %s\n", c.Columns.Continent)
	fmt.Fprintf(w, "  gdp: %s\n", c.Columns.GDP)
	fmt.Fprintf(w, "  criminality: %s\n", c.Columns.Criminality)
	fmt.Fprintf(w, "  resilience: %s\n", c.Columns.Resilience)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "dataset":
		c.Dataset = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for sheet_index: %v", val)
		}
		c.SheetIndex = i
	case "styles_file":
		c.StylesFile = val
	case "host":
		c.Host = val
	case "port":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for port: %w", err)
		}
		c.Port = i
	case "page_title":
		c.PageTitle = val
	case "plotly_url":
		c.PlotlyURL = val
	case "output_dir":
		c.OutputDir = val
	case "columns.country":
		c.Columns.Country = val
	case "columns.code":
		c.Columns.Code = val
	case "columns.continent":
		c.Columns.Continent = val
	case "columns.gdp":
		c.Columns.GDP = val
	case "columns.criminality":
		c.Columns.Criminality = val
	case "columns.resilience":
		c.Columns.Resilience = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
