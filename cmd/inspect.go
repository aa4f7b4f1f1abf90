package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/crimedash/internal/analysis"
	"github.com/KaramelBytes/crimedash/internal/utils"
	"github.com/spf13/cobra"
)

var inspectOutput string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a Markdown summary of the dataset and its derived tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, path, err := loadTable()
		if err != nil {
			return err
		}
		rep, err := analysis.Summarize(filepath.Base(path), t)
		if err != nil {
			return err
		}
		md := rep.Markdown()
		if inspectOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(inspectOutput, []byte(md)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Summary written to %s\n", inspectOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "write the summary to a file instead of stdout")
}
