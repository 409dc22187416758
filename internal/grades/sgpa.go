package grades

import (
	"math"
	"sort"
)

// Compute returns the credit weighted average of the grade points of rows,
// rounded to 2 decimal places. Failing and unknown grades add 0 points but
// their credits still count.
func Compute(rows map[string]GradeRow) float64 {
	subjects := make([]string, 0, len(rows))
	for subject := range rows {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	var totalCredits float64
	var totalPoints float64
	for _, subject := range subjects {
		row := rows[subject]
		totalCredits += row.Credits
		totalPoints += Points(row.Grade) * row.Credits
	}
	if totalCredits <= 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// SGPA returns the semester grade point average of an extraction, an
// extraction that found nothing is worth 0.
func SGPA(e Extraction) float64 {
	if !e.Found() {
		return 0
	}
	return Compute(e.Rows)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
