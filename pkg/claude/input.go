// Package claude defines the JSON payload Claude Code writes to the
// status line's stdin and its parsing rules.
package claude

import (
	"encoding/json"

	"github.com/arthur-debert/promptline/pkg/errors"
)

// Input is the session snapshot delivered on stdin for each render.
type Input struct {
	SessionID      string         `json:"session_id"`
	TranscriptPath string         `json:"transcript_path,omitempty"`
	Cwd            string         `json:"cwd"`
	Model          ModelInfo      `json:"model"`
	Workspace      *WorkspaceInfo `json:"workspace,omitempty"`
	Version        string         `json:"version,omitempty"`
	OutputStyle    *OutputStyle   `json:"output_style,omitempty"`
}

// ModelInfo identifies the active model.
type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// WorkspaceInfo carries the richer directory pair newer clients send.
type WorkspaceInfo struct {
	CurrentDir string `json:"current_dir"`
	ProjectDir string `json:"project_dir"`
}

// OutputStyle names the client's active output style.
type OutputStyle struct {
	Name string `json:"name"`
}

// Parse decodes and validates a stdin payload. Unknown fields are
// tolerated so newer clients keep working with older binaries.
func Parse(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, errors.ErrInputParse, "invalid status line input")
	}
	if in.SessionID == "" {
		return nil, errors.New(errors.ErrInputParse, "missing session_id")
	}
	if in.Cwd == "" {
		return nil, errors.New(errors.ErrInputParse, "missing cwd")
	}
	if in.Model.ID == "" && in.Model.DisplayName == "" {
		return nil, errors.New(errors.ErrInputParse, "missing model")
	}
	return &in, nil
}

// CurrentDir prefers the workspace's current_dir over the legacy cwd.
func (in *Input) CurrentDir() string {
	if in.Workspace != nil && in.Workspace.CurrentDir != "" {
		return in.Workspace.CurrentDir
	}
	return in.Cwd
}

// ProjectDir returns the workspace project directory when known.
func (in *Input) ProjectDir() string {
	if in.Workspace != nil {
		return in.Workspace.ProjectDir
	}
	return ""
}
