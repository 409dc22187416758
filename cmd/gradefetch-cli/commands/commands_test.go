package commands

import (
	"bytes"
	"context"
	"testing"

	"gradefetch-backend/internal/grades"
	"gradefetch-backend/internal/service"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := runCommand(t, "parse", "../../../internal/grades/testdata/semwise.html")
	require.NoError(t, err)

	require.Contains(t, out, "MATRICES AND CALCULUS")
	require.Contains(t, out, "ENGINEERING DRAWING")
	require.NotContains(t, out, "ENVIRONMENTAL SCIENCE")
	require.Contains(t, out, "6.79")
	require.Contains(t, out, "5 subjects")
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "parse", "does-not-exist.html")
	require.Error(t, err)
}

func TestSemestersCommand(t *testing.T) {
	out, err := runCommand(t, "semesters")
	require.NoError(t, err)

	require.Contains(t, out, "I_I")
	require.Contains(t, out, "IV Year II Semester")
	require.Contains(t, out, "#cpStudCorner_btn8")
}

func TestFetchCommandRejectsBadSemester(t *testing.T) {
	_, err := runCommand(t, "fetch", "--roll", "22r91a0501", "--semester", "iv_ii")
	require.ErrorIs(t, err, service.ErrInvalidRequest)
	require.ErrorContains(t, err, "did you mean IV_II?")
}

func TestRenderGradesNotFound(t *testing.T) {
	var out bytes.Buffer
	renderGrades(&out, grades.Extraction{NotFound: grades.NotFoundTable})
	require.Equal(t, "no grades: table not found\n", out.String())
}
