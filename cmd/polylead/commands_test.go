package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polylead/internal/config"
)

// run executes the CLI with args and stdin, returning stdout, stderr and
// the command error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "", "validate", "x^2 + y")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	out, _, err = run(t, "", "validate", "x + 3 y")
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "MISSING_OPERATOR")
}

func TestValidate_StdinLines(t *testing.T) {
	out, _, err := run(t, "x\n\nx**2\ny^3\n", "validate")
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "DOUBLE_STAR_OPERATOR")
	assert.Equal(t, 2, strings.Count(out, "valid  "))
}

func TestValidate_Quiet(t *testing.T) {
	out, _, err := run(t, "", "validate", "-q", "x^")
	assert.ErrorIs(t, err, errRejected)
	assert.Empty(t, out)
}

func TestNormalize(t *testing.T) {
	out, _, err := run(t, "", "normalize", "(x+1)(x-1)")
	require.NoError(t, err)
	assert.Equal(t, "x^2 - x + x - 1\n", out)
}

func TestNormalize_Rejected(t *testing.T) {
	out, errOut, err := run(t, "", "normalize", "(x+1")
	assert.ErrorIs(t, err, errRejected)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "UNBALANCED_PARENTHESES")
}

func TestAnalyze_Report(t *testing.T) {
	out, _, err := run(t, "", "analyze", "xy + 3x^2y - 5")
	require.NoError(t, err)
	assert.Contains(t, out, "Leading term")
	assert.Contains(t, out, "3x²y")
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := run(t, "", "analyze", "--json", "x/3 + y^2")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "x/3 + y^2", got["original_expression"])
	assert.Equal(t, float64(2), got["degree"])
	assert.Equal(t, "1", got["leading_coefficient"])
}

func TestAnalyze_JSONError(t *testing.T) {
	out, _, err := run(t, "", "analyze", "--json", "")
	assert.Error(t, err)
	assert.NotContains(t, out, "original_expression")

	out, _, err = run(t, "", "analyze", "--json", "x^y")
	assert.ErrorIs(t, err, errRejected)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "NON_NUMERIC_EXPONENT", got["code"])
}

func TestAnalyze_LaTeXAndPlain(t *testing.T) {
	out, _, err := run(t, "", "analyze", "--latex", "2x/4y")
	require.NoError(t, err)
	assert.Equal(t, "0.5\\frac{x}{y}\n", out)

	out, _, err = run(t, "", "analyze", "--plain", "2x/4y")
	require.NoError(t, err)
	assert.Equal(t, "0.5x/y\n", out)

	_, _, err = run(t, "", "analyze", "--json", "--latex", "x")
	assert.Error(t, err)
}

func TestTool(t *testing.T) {
	out, _, err := run(t, "", "tool", "analyze", "x^3 + x")
	require.NoError(t, err)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "x^3", resp["string"])

	out, _, err = run(t, "", "tool", "nope", "x")
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "unknown tool: nope")
}

func TestInteractive_LineMode(t *testing.T) {
	out, _, err := run(t, "x^2 + x\n\nx + 3 y\n", "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Leading term")
	assert.Contains(t, out, "MISSING_OPERATOR")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polylead.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyzer:\n  max_terms: 2\n"), 0o600))

	out, errOut, err := run(t, "", "--config", path, "analyze", "(x+1)(x+1)")
	assert.ErrorIs(t, err, errRejected)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "EXPANSION_LIMIT_EXCEEDED")
}

func TestLogLevelFlag(t *testing.T) {
	_, errOut, err := run(t, "", "--log-level", "debug", "analyze", "--plain", "x")
	require.NoError(t, err)
	assert.Contains(t, errOut, "analysis complete")

	_, _, err = run(t, "", "--log-level", "loud", "analyze", "x")
	assert.Error(t, err)
}
