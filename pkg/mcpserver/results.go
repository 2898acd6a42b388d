// pkg/mcpserver/results.go

package mcpserver

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// Every tool returns a structured result, success or failure; protocol-level
// errors are reserved for malformed requests. Each operation has its own
// typed data payload rather than an open-ended map.

// ToolResult is the common success/message envelope.
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MatchInfo locates a pattern match or line selection inside a file.
type MatchInfo struct {
	Pattern    string `json:"pattern,omitempty"`
	MatchStart *int   `json:"match_start,omitempty"`
	MatchEnd   *int   `json:"match_end,omitempty"`
	TotalLines *int   `json:"total_lines,omitempty"`
}

// ReadTextResult is the read_text payload.
type ReadTextResult struct {
	ToolResult
	Text      string     `json:"text"`
	StartLine *int       `json:"start_line,omitempty"`
	EndLine   *int       `json:"end_line,omitempty"`
	MatchInfo *MatchInfo `json:"match_info,omitempty"`
}

// SyncSnapshot is the verdict summary attached to refused edits.
type SyncSnapshot struct {
	IsSynced       bool     `json:"is_synced"`
	LocalAhead     bool     `json:"local_ahead"`
	RemoteAhead    bool     `json:"remote_ahead"`
	HasUncommitted bool     `json:"has_uncommitted"`
	Warnings       []string `json:"warnings"`
	Suggestions    []string `json:"suggestions"`
}

func snapshotOf(v *vcs.SyncVerdict) *SyncSnapshot {
	return &SyncSnapshot{
		IsSynced:       v.IsSynced,
		LocalAhead:     v.LocalAhead(),
		RemoteAhead:    v.RemoteAhead(),
		HasUncommitted: v.HasUncommittedChanges,
		Warnings:       v.Warnings,
		Suggestions:    v.Suggestions,
	}
}

// WriteTextData is the data variant for write_text.
type WriteTextData struct {
	FilePath          string `json:"file_path"`
	Pattern           string `json:"pattern,omitempty"`
	ReplacementLength *int   `json:"replacement_length,omitempty"`
	LinesReplaced     *int   `json:"lines_replaced,omitempty"`
	NewLines          *int   `json:"new_lines,omitempty"`
	PushStatus        string `json:"push_status,omitempty"`
}

// WriteTextResult is the write_text payload.
type WriteTextResult struct {
	ToolResult
	Data       *WriteTextData `json:"data,omitempty"`
	SyncStatus *SyncSnapshot  `json:"sync_status,omitempty"`
}

// EditSelectionData is the data variant for edit_latex_selection.
type EditSelectionData struct {
	FilePath      string `json:"file_path"`
	LinesEdited   int    `json:"lines_edited"`
	NewLines      int    `json:"new_lines"`
	OldTextLength int    `json:"old_text_length"`
	NewTextLength int    `json:"new_text_length"`
	PushStatus    string `json:"push_status,omitempty"`
}

// EditSelectionResult is the edit_latex_selection payload.
type EditSelectionResult struct {
	ToolResult
	Data       *EditSelectionData `json:"data,omitempty"`
	SyncStatus *SyncSnapshot      `json:"sync_status,omitempty"`
}

// EditFileData is the data variant for edit_latex_file.
type EditFileData struct {
	FilePath     string `json:"file_path"`
	BytesWritten int    `json:"bytes_written"`
	Lines        int    `json:"lines"`
	PushStatus   string `json:"push_status,omitempty"`
}

// EditFileResult is the edit_latex_file payload.
type EditFileResult struct {
	ToolResult
	Data       *EditFileData `json:"data,omitempty"`
	SyncStatus *SyncSnapshot `json:"sync_status,omitempty"`
}

// PushData is the data variant for push_to_overleaf.
type PushData struct {
	Branch string `json:"branch,omitempty"`
	Output string `json:"output,omitempty"`
}

// PushResult is the push_to_overleaf payload.
type PushResult struct {
	ToolResult
	Data *PushData `json:"data,omitempty"`
}

// PullResult is the pull_overleaf_project payload.
type PullResult struct {
	ToolResult
	LocalPath   string   `json:"local_path"`
	FilesPulled []string `json:"files_pulled"`
}

// SyncStatusResult is the check_sync_status payload.
type SyncStatusResult struct {
	ToolResult
	IsSynced           bool     `json:"is_synced"`
	LocalAhead         bool     `json:"local_ahead"`
	RemoteAhead        bool     `json:"remote_ahead"`
	HasUncommitted     bool     `json:"has_uncommitted"`
	Warnings           []string `json:"warnings"`
	Suggestions        []string `json:"suggestions"`
	LocalCommitsAhead  int      `json:"local_commits_ahead"`
	RemoteCommitsAhead int      `json:"remote_commits_ahead"`
	RemoteStateKnown   bool     `json:"remote_state_known"`
}

func intPtr(n int) *int {
	return &n
}

// jsonResult serializes any result payload into a text tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}
