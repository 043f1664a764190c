package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkersey/graphmail/internal/attr"
)

func TestCompile_FullQuery(t *testing.T) {
	out, err := execute(t, "compile",
		"--select", "subject,from",
		"--where", "subject contains invoice",
		"--where", "not is_read",
		"--order", "received_date_time desc",
		"--top", "10",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "$select:  subject,from")
	assert.Contains(t, out, "$filter:  (contains(subject, 'invoice') and isRead ne true)")
	assert.Contains(t, out, "$orderby: receivedDateTime desc")
	assert.Contains(t, out, "$top:     10")
	assert.Contains(t, out, "fingerprint: ")
}

func TestCompile_JSONFormat(t *testing.T) {
	out, err := execute(t, "--format", "json", "compile",
		"--where", "has_attachments",
	)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "hasAttachments eq true", resp.Data.Filter)
	assert.Len(t, resp.Data.Fingerprint, 64)
}

func TestCompile_AnyJoinsWithOr(t *testing.T) {
	out, err := execute(t, "compile", "--any",
		"--where", "is_draft",
		"--where", "subject startswith RE:",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "$filter:  (isDraft eq true or startswith(subject, 'RE:'))")
}

func TestCompile_EnumCondition(t *testing.T) {
	out, err := execute(t, "compile",
		"--registry", "event",
		"--where", "importance is HIGH",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "$filter:  importance eq 'high'")
}

func TestCompile_NonFilterableAttributeFails(t *testing.T) {
	_, err := execute(t, "compile", "--where", "body contains secret")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, attr.IsUsageError(err))
}

func TestCompile_UnknownAttribute(t *testing.T) {
	_, err := execute(t, "compile", "--where", "shoe_size gt 42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompile_UnknownOp(t *testing.T) {
	_, err := execute(t, "compile", "--where", "subject like invoice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "like"`)
}

func TestCompile_StableFingerprint(t *testing.T) {
	first, err := execute(t, "--format", "json", "compile", "--where", "is_read eq false")
	require.NoError(t, err)
	second, err := execute(t, "--format", "json", "compile", "--where", "is_read eq false")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, false, parseValue("false"))
	assert.Equal(t, 42, parseValue("42"))
	assert.Equal(t, "draft", parseValue("'draft'"))
	assert.Equal(t, "hello world", parseValue("hello world"))
}
