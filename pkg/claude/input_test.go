package claude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/promptline/pkg/errors"
)

func TestParseMinimalInput(t *testing.T) {
	in, err := Parse([]byte(`{
		"session_id": "abc",
		"cwd": "/home/user/project",
		"model": {"id": "claude-opus-4", "display_name": "Opus"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", in.SessionID)
	assert.Equal(t, "/home/user/project", in.CurrentDir())
	assert.Equal(t, "Opus", in.Model.DisplayName)
	assert.Empty(t, in.ProjectDir())
}

func TestParseWorkspaceOverridesCwd(t *testing.T) {
	in, err := Parse([]byte(`{
		"session_id": "abc",
		"cwd": "/legacy",
		"model": {"id": "m"},
		"workspace": {"current_dir": "/real/dir", "project_dir": "/real"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "/real/dir", in.CurrentDir())
	assert.Equal(t, "/real", in.ProjectDir())
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputParse))
}

func TestParseRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"session_id", `{"cwd": "/x", "model": {"id": "m"}}`},
		{"cwd", `{"session_id": "s", "model": {"id": "m"}}`},
		{"model", `{"session_id": "s", "cwd": "/x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInputParse))
		})
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{
		"session_id": "s", "cwd": "/x", "model": {"id": "m"},
		"future_field": {"nested": true}
	}`))
	assert.NoError(t, err)
}
