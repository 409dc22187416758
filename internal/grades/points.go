package grades

// GradeRow is one subject of a semester's results table.
type GradeRow struct {
	Subject string  `json:"subject"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
}

var gradePoints = map[string]float64{
	"O":  10.0,
	"A+": 9.0,
	"A":  8.0,
	"B+": 7.0,
	"B":  6.0,
	"C":  5.0,
	"F":  0.0,
	"AB": 0.0,
}

// Points returns the grade points of a grade label, labels that are not in the
// grading scale are worth 0 points.
func Points(grade string) float64 {
	return gradePoints[grade]
}

// KnownGrade reports whether grade is part of the grading scale.
func KnownGrade(grade string) bool {
	_, ok := gradePoints[grade]
	return ok
}
