package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_BuiltinRegistry(t *testing.T) {
	out, err := execute(t, "fields", "message")
	require.NoError(t, err)

	assert.Contains(t, out, "registry: message")
	assert.Contains(t, out, "received_date_time")
	assert.Contains(t, out, "receivedDateTime")
	assert.Contains(t, out, "HIGH=high")
	assert.Contains(t, out, "non_filterable")
}

func TestFields_JSONFormat(t *testing.T) {
	out, err := execute(t, "--format", "json", "fields", "contact")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   FieldsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "contact", resp.Data.Registry)

	var mobile *FieldInfo
	for i := range resp.Data.Fields {
		if resp.Data.Fields[i].Name == "mobile_phone1" {
			mobile = &resp.Data.Fields[i]
		}
	}
	require.NotNil(t, mobile)
	assert.Equal(t, "mobilePhone1", mobile.Remote)
	assert.Equal(t, "plain", mobile.Kind)
}

func TestFields_UnknownRegistry(t *testing.T) {
	_, err := execute(t, "fields", "widgets")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFields_NoArgs(t *testing.T) {
	_, err := execute(t, "fields")
	require.Error(t, err)
}

func TestFields_SchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.cue")
	require.NoError(t, os.WriteFile(path, []byte(`
registry: "project_tasks"
attributes: [
	{name: "title", kind: "plain"},
	{name: "is_done", kind: "boolean"},
]
`), 0o644))

	cmd := NewRootCommand()
	outBuf := &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fields", "--schema", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, outBuf.String(), "registry: project_tasks")
	assert.Contains(t, outBuf.String(), "isDone")
}
