package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<table><tr><td>O<b>+</b></td><td> 3 </td></tr></table>`))
	require.NoError(t, err)
	require.Equal(t, "O+ 3 ", GetText(doc))
	require.Equal(t, "", GetText(nil))
}

func TestCleanText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  JOHN   DOE \n", expected: "JOHN DOE"},
		{input: "8.52\u200b", expected: "8.52"},
		{input: "\tA\n\nB", expected: "A B"},
		{input: "", expected: ""},
	}
	for _, row := range table {
		require.Equal(t, row.expected, CleanText(row.input))
	}
}
