package grades

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gradefetch-backend/lib/htmlutil"
	"gradefetch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	NotFoundTable = "table not found"
	NotFoundRows  = "no valid grade data found in table"
)

// the positional layout of the TKRCET semwise grid, used whenever the header
// row does not name both the grade and the credits column.
const (
	fallbackSubject = 4
	fallbackGrade   = 5
	fallbackCredits = 6
)

var tableSelectors = []string{
	`table[id*="grdSemwise"]`,
	`table[id*="GridView"]`,
	`table[id*="grd"]`,
	`table`,
}

var tableKeywords = []string{"grade", "credit", "subject"}

// Layout is the column layout the extractor resolved for a table, a column
// that could not be resolved is -1.
type Layout struct {
	HeaderRow int
	Subject   int
	Grade     int
	Credits   int
	// Fallback is true when the fixed positional layout replaced the
	// header detection result.
	Fallback bool
}

// Extraction is the result of reading a results table. A missing table or a
// table without a single usable row is reported through NotFound rather than
// as an error.
type Extraction struct {
	Rows     map[string]GradeRow
	Layout   Layout
	NotFound string
}

func (e Extraction) Found() bool {
	return e.NotFound == ""
}

func (e Extraction) Count() int {
	return len(e.Rows)
}

// ExtractReader parses an html document and extracts the grade table from it.
func ExtractReader(r io.Reader) (Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Extraction{}, fmt.Errorf("parse results page: %w", err)
	}
	return Extract(doc), nil
}

// Extract locates the results table in doc and returns its rows keyed by
// subject.
func Extract(doc *goquery.Document) Extraction {
	table := findTable(doc)
	if table == nil {
		return Extraction{
			Layout:   Layout{HeaderRow: -1, Subject: -1, Grade: -1, Credits: -1},
			NotFound: NotFoundTable,
		}
	}

	rows := table.Find("tr")
	layout := detectLayout(rows)

	start := layout.HeaderRow + 1
	if layout.HeaderRow < 0 {
		start = 1
	}

	result := make(map[string]GradeRow)
	rows.Each(func(i int, row *goquery.Selection) {
		if i < start {
			return
		}
		parsed, ok := readRow(i, row.Find("td"), layout)
		if !ok {
			return
		}
		result[parsed.Subject] = parsed
	})

	if len(result) == 0 {
		return Extraction{Layout: layout, NotFound: NotFoundRows}
	}
	return Extraction{Rows: result, Layout: layout}
}

func findTable(doc *goquery.Document) *goquery.Selection {
	for _, selector := range tableSelectors {
		table := doc.Find(selector).First()
		if table.Length() > 0 {
			return table
		}
	}

	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if textutil.MatchName(table.Text(), tableKeywords) {
			found = table
			return false
		}
		return true
	})
	return found
}

func detectLayout(rows *goquery.Selection) Layout {
	layout := Layout{HeaderRow: -1, Subject: -1, Grade: -1, Credits: -1}

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		var headers []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, textutil.NormalizeName(cell.Text()))
		})

		isHeader := false
		for _, text := range headers {
			if textutil.MatchName(text, tableKeywords) {
				isHeader = true
				break
			}
		}
		if !isHeader {
			return true
		}

		layout.HeaderRow = i
		for col, text := range headers {
			if strings.Contains(text, "credit") {
				layout.Credits = col
			}
			if strings.Contains(text, "grade") || strings.Contains(text, "finalgrade") {
				layout.Grade = col
			}
			if strings.Contains(text, "subject") {
				layout.Subject = col
			}
		}
		return false
	})

	// both columns are replaced even when only one of them is missing, the
	// portal's own grid relies on this.
	if layout.Credits < 0 || layout.Grade < 0 {
		layout.Subject = fallbackSubject
		layout.Grade = fallbackGrade
		layout.Credits = fallbackCredits
		layout.Fallback = true
	}
	return layout
}

func readRow(index int, cells *goquery.Selection, layout Layout) (GradeRow, bool) {
	if cells.Length() < max(layout.Grade, layout.Credits)+1 {
		return GradeRow{}, false
	}

	grade := cellText(cells, layout.Grade)
	if grade == "" {
		return GradeRow{}, false
	}

	number, ok := textutil.LeadingNumber(cellText(cells, layout.Credits))
	if !ok {
		return GradeRow{}, false
	}
	credits, err := strconv.ParseFloat(number, 64)
	if err != nil || credits <= 0 {
		return GradeRow{}, false
	}

	subject := cellText(cells, layout.Subject)
	if subject == "" {
		subject = fmt.Sprintf("Subject_%d", index)
	}

	return GradeRow{
		Subject: subject,
		Credits: credits,
		Grade:   grade,
	}, true
}

func cellText(cells *goquery.Selection, col int) string {
	if col < 0 || col >= cells.Length() {
		return ""
	}
	return htmlutil.CleanText(cells.Eq(col).Text())
}
