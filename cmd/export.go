package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/crimedash/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportOut string
	exportPNG bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write chart JSON, a standalone HTML page and optional PNGs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		dir := cfg.OutputDir
		if cmd.Flags().Changed("out") {
			dir = exportOut
		}
		figs, err := buildFigures()
		if err != nil {
			return err
		}
		res, err := export.Run(figs, export.Options{
			Dir:  dir,
			PNG:  exportPNG,
			Page: pageOptions(),
		}, export.NewProgress(os.Stderr), logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Exported %d charts to %s (build %s)\n", len(res.JSON), dir, res.BuildID)
		fmt.Fprintf(out, "  page: %s\n", filepath.Join(dir, res.HTML))
		if exportPNG {
			fmt.Fprintf(out, "  png: %d written", len(res.PNG))
			if len(res.Skipped) > 0 {
				fmt.Fprintf(out, ", %d skipped (maps have no static rendering)", len(res.Skipped))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default from config, \"dist\")")
	exportCmd.Flags().BoolVar(&exportPNG, "png", false, "also render bar, scatter and heatmap charts as PNG")
}
