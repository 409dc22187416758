// Package semester holds the fixed set of semester codes the portal knows about
// and the on-page selector of each semester's results button.
package semester

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// Code identifies one academic semester, ex. "II_I" is the first semester of
// the second year.
type Code string

const (
	YearOneSemOne   Code = "I_I"
	YearOneSemTwo   Code = "I_II"
	YearTwoSemOne   Code = "II_I"
	YearTwoSemTwo   Code = "II_II"
	YearThreeSemOne Code = "III_I"
	YearThreeSemTwo Code = "III_II"
	YearFourSemOne  Code = "IV_I"
	YearFourSemTwo  Code = "IV_II"
)

var ErrUnknownSemester = errors.New("unknown semester code")

type entry struct {
	code     Code
	label    string
	selector string
}

var table = [...]entry{
	{code: YearOneSemOne, label: "I Year I Semester", selector: "#cpStudCorner_btn1"},
	{code: YearOneSemTwo, label: "I Year II Semester", selector: "#cpStudCorner_btn2"},
	{code: YearTwoSemOne, label: "II Year I Semester", selector: "#cpStudCorner_btn3"},
	{code: YearTwoSemTwo, label: "II Year II Semester", selector: "#cpStudCorner_btn4"},
	{code: YearThreeSemOne, label: "III Year I Semester", selector: "#cpStudCorner_btn5"},
	{code: YearThreeSemTwo, label: "III Year II Semester", selector: "#cpStudCorner_btn6"},
	{code: YearFourSemOne, label: "IV Year I Semester", selector: "#cpStudCorner_btn7"},
	{code: YearFourSemTwo, label: "IV Year II Semester", selector: "#cpStudCorner_btn8"},
}

var index = func() map[Code]entry {
	out := make(map[Code]entry, len(table))
	for _, e := range table {
		out[e.code] = e
	}
	return out
}()

// Parse returns the Code for raw, raw must exactly match one of the known codes.
func Parse(raw string) (Code, error) {
	e, ok := index[Code(raw)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSemester, raw)
	}
	return e.code, nil
}

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	_, ok := index[c]
	return ok
}

// Selector returns the CSS selector of the button that opens this semester's
// results, it is empty for an unknown code.
func (c Code) Selector() string {
	return index[c].selector
}

// Label returns a human readable name of the semester.
func (c Code) Label() string {
	return index[c].label
}

func (c Code) String() string {
	return string(c)
}

// All returns every known code in academic order.
func All() []Code {
	out := make([]Code, len(table))
	for i, e := range table {
		out[i] = e.code
	}
	return out
}

// Suggest returns the known code most similar to raw, or an empty string if
// nothing is similar at all.
func Suggest(raw string) Code {
	var best Code
	var bestSimilarity float64
	for _, e := range table {
		similarity := matchr.JaroWinkler(strings.ToUpper(raw), string(e.code), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = e.code
		}
	}
	return best
}
