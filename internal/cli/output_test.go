package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "compile", errors.New("boom"))
	assert.Equal(t, "compile: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.EqualError(t, errors.Unwrap(wrapped), "boom")
}

func TestGetExitCode_PlainError(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestGetExitCode_WrappedExitError(t *testing.T) {
	inner := NewExitError(ExitCommandError, "inner")
	outer := fmt.Errorf("outer: %w", inner)
	assert.Equal(t, ExitCommandError, GetExitCode(outer))
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out}

	require.NoError(t, f.Success(map[string]string{"k": "v"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"k": "v"}, resp.Data)
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out}

	require.NoError(t, f.Error("E002", "bad query", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E002", resp.Error.Code)
	assert.Equal(t, "bad query", resp.Error.Message)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out}

	require.NoError(t, f.Error("E001", "broken", nil))
	assert.Equal(t, "Error [E001]: broken\n", out.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	loud := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	loud.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}
