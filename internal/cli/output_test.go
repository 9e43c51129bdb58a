package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	base := errors.New("disk full")
	err := WrapExitError(ExitCommandError, ErrCodeStorage, "failed to add lexeme", base)

	assert.Equal(t, "failed to add lexeme: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "lexeme already registered", NewExitError(ExitFailure, ErrCodeDuplicate, "lexeme already registered").Error())
}

func TestGetExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"exit failure", NewExitError(ExitFailure, ErrCodeNotFound, "missing"), ExitFailure},
		{"command error", NewExitError(ExitCommandError, ErrCodeInvalidInput, "bad"), ExitCommandError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetExitCode(tc.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeGeneric, GetErrorCode(errors.New("boom")))
	assert.Equal(t, ErrCodeDuplicate, GetErrorCode(NewExitError(ExitFailure, ErrCodeDuplicate, "dup")))
}

func TestOutputFormatterSuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"n": 1}, "done\n"))
	assert.Equal(t, "done\n", buf.String())
}

func TestOutputFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"n": 1}, "done\n"))

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Nil(t, response.Error)
	assert.Equal(t, map[string]any{"n": float64(1)}, response.Data)
}

func TestOutputFormatterErrorText(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: true}

	require.NoError(t, f.Error(ErrCodeNotFound, "lexeme \"x\" not found", "db: test.db"))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E002]: lexeme \"x\" not found")
	assert.Contains(t, errOut.String(), "Details: db: test.db")
}

func TestOutputFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error(ErrCodeInvalidInput, "transcript is empty", nil))

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeInvalidInput, response.Error.Code)
	assert.Equal(t, "transcript is empty", response.Error.Message)
}
