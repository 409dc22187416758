package commands

import (
	"fmt"
	"os"

	"gradefetch-backend/internal/grades"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <page.html>",
	Short: "Runs the grade extractor on a saved results page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		result, err := grades.ExtractReader(f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderLayout(out, result.Layout)
		renderGrades(out, result)
		if result.Found() {
			fmt.Fprintf(out, "%d subjects\n", result.Count())
		}
		return nil
	},
}
