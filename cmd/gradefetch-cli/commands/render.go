package commands

import (
	"fmt"
	"io"
	"sort"

	"gradefetch-backend/internal/grades"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// renderGrades prints one row per subject followed by the credit total and
// the sgpa.
func renderGrades(out io.Writer, e grades.Extraction) {
	if !e.Found() {
		fmt.Fprintf(out, "no grades: %s\n", e.NotFound)
		return
	}

	subjects := make([]string, 0, len(e.Rows))
	for subject := range e.Rows {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	t := newTable(out)
	t.AppendHeader(table.Row{"Subject", "Grade", "Points", "Credits"})
	var credits float64
	for _, subject := range subjects {
		row := e.Rows[subject]
		credits += row.Credits
		t.AppendRow(table.Row{row.Subject, row.Grade, grades.Points(row.Grade), row.Credits})
	}
	t.AppendFooter(table.Row{"SGPA", fmt.Sprintf("%.2f", grades.SGPA(e)), "", credits})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func renderLayout(out io.Writer, layout grades.Layout) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Header row", "Subject", "Grade", "Credits", "Positional fallback"})
	t.AppendRow(table.Row{layout.HeaderRow, layout.Subject, layout.Grade, layout.Credits, layout.Fallback})
	t.Render()
}
