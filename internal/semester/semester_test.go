package semester

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

func TestSelectorsAreUniqueAndNonEmpty(t *testing.T) {
	codes := All()
	require.Len(t, codes, 8)

	seen := map[string]Code{}
	for i, code := range codes {
		selector := code.Selector()
		require.NotEmpty(t, selector, code)
		require.Equal(t, fmt.Sprintf("#cpStudCorner_btn%d", i+1), selector)

		other, duplicate := seen[selector]
		require.False(t, duplicate, "%s shares a selector with %s", code, other)
		seen[selector] = code

		parsed, err := Parse(string(code))
		require.NoError(t, err)
		require.Equal(t, code, parsed)
		require.True(t, code.Valid())
		require.NotEmpty(t, code.Label())
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	table := []string{
		"",
		"i_i",
		"II-I",
		"V_I",
		" II_I",
		"II_I ",
		"I_III",
		"#cpStudCorner_btn1",
	}
	for _, raw := range table {
		code, err := Parse(raw)
		require.ErrorIs(t, err, ErrUnknownSemester, raw)
		require.Empty(t, code)
		require.Empty(t, code.Selector())
		require.False(t, code.Valid())
	}
}

func TestParseRejectsRandomInput(t *testing.T) {
	for i := 0; i < 200; i++ {
		raw, err := random.String(1 + i%8)
		require.NoError(t, err)
		if Code(raw).Valid() {
			continue
		}
		_, err = Parse(raw)
		require.ErrorIs(t, err, ErrUnknownSemester, raw)
	}
}

func TestParseErrorMentionsInput(t *testing.T) {
	_, err := Parse("IX_I")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), `"IX_I"`))
}

func TestSuggest(t *testing.T) {
	table := []struct {
		input    string
		expected Code
	}{
		{input: "ii_i", expected: YearTwoSemOne},
		{input: "IV-II", expected: YearFourSemTwo},
		{input: "III_I", expected: YearThreeSemOne},
		{input: "I_I_", expected: YearOneSemOne},
	}
	for _, row := range table {
		require.Equal(t, row.expected, Suggest(row.input), row.input)
	}
}
