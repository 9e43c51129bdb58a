package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/report"
)

func TestAnalyzeTextReport(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", supportTranscript)

	out, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, report.Title+"\n"))
	assert.Contains(t, out, "AGENT SENTIMENT:\nLabel: Positive (2)")
	assert.Contains(t, out, "CUSTOMER SENTIMENT:\nLabel: Negative (-2)")
	assert.Contains(t, out, "Greeting: OK")
	assert.Contains(t, out, "Customer identification: Missing")
	assert.Contains(t, out, "Prohibited language: None detected")
	assert.Contains(t, out, "Courteous closing: OK")
	assert.Contains(t, out, "UNRESOLVED WORDS: todo, hoy")
	assert.NotContains(t, out, "CORRECTIONS:")
}

func TestAnalyzeJSON(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", supportTranscript)

	out, _, err := execute(NewRootCommand(), "--format", "json", "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"))
	require.NoError(t, err)

	var response struct {
		Status string         `json:"status"`
		Data   model.Analysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))

	assert.Equal(t, "ok", response.Status)
	a := response.Data
	assert.NotEmpty(t, a.RunID)
	require.Len(t, a.Turns, 2)
	require.NotNil(t, a.Agent)
	assert.Equal(t, model.LabelPositive, a.Agent.Label)
	require.NotNil(t, a.Customer)
	assert.Equal(t, -2, a.Customer.TotalScore)
	assert.Equal(t, []string{"todo", "hoy"}, a.Unresolved)
	assert.Empty(t, a.Corrections)
}

func TestAnalyzeWritesReportFile(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", supportTranscript)
	outPath := filepath.Join(dir, "call.report")

	out, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"), "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestAnalyzeScriptOracleKeepsWord(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "l.db")
	transcript := writeFile(t, dir, "call.txt", supportTranscript)
	script := writeFile(t, dir, "answers.yaml", `
answers:
  todo: {keep: {category: cuantificador, weight: 0}}
  hoy: {cancel: true}
`)

	out, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", db, "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "UNRESOLVED WORDS: hoy")

	// The kept word is durable.
	out, _, err = execute(NewRootCommand(), "lexicon", "lookup", "todo", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "todo\tcuantificador\t0\n", out)
}

func TestAnalyzePromptOracle(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", "Agent: Hola, grasias.\n")

	rootOpts := &RootOptions{In: strings.NewReader("1\n")}
	out, errOut, err := execute(newRootCommand(rootOpts), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"), "--oracle", "prompt")
	require.NoError(t, err)

	assert.Contains(t, errOut, "grasias")
	assert.Contains(t, out, "CORRECTIONS:\ngrasias -> gracias [despedida, +1]")
	assert.NotContains(t, out, "UNRESOLVED WORDS")
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "empty.txt", "\n   \n")

	_, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeInvalidInput, GetErrorCode(err))
}

func TestAnalyzeMissingTranscript(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(NewRootCommand(), "analyze",
		filepath.Join(dir, "missing.txt"), "--db", filepath.Join(dir, "l.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, GetErrorCode(err))
}

func TestAnalyzeUnknownOracle(t *testing.T) {
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", supportTranscript)

	_, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"), "--oracle", "magic")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown oracle "magic"`)
}

func TestAnalyzeLLMWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	transcript := writeFile(t, dir, "call.txt", supportTranscript)

	_, _, err := execute(NewRootCommand(), "analyze",
		transcript, "--db", filepath.Join(dir, "l.db"), "--oracle", "llm")
	require.Error(t, err)
	assert.Equal(t, ErrCodeConfig, GetErrorCode(err))
}

func TestAnalyzeMissingArgs(t *testing.T) {
	_, _, err := execute(NewRootCommand(), "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
