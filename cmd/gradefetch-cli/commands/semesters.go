package commands

import (
	"gradefetch-backend/internal/semester"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(semestersCmd)
}

var semestersCmd = &cobra.Command{
	Use:   "semesters",
	Short: "Lists the semester codes accepted by fetch.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Code", "Semester", "Selector"})
		for _, code := range semester.All() {
			t.AppendRow(table.Row{code, code.Label(), code.Selector()})
		}
		t.Render()
	},
}
