// pkg/mcpserver/tools.go

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	cerr "github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/editor"
	"github.com/latexops/overleaf-mcp/pkg/execute"
	"github.com/latexops/overleaf-mcp/pkg/logger"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// intArg reads an optional integer argument; JSON numbers arrive as float64.
func intArg(req mcp.CallToolRequest, key string, fallback int) int {
	args := req.GetArguments()
	switch n := args[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}

func missingParam(name string) *mcp.CallToolResult {
	return mcp.NewToolResultError("missing required parameter: " + name)
}

// userMessage renders an error for a structured result, capitalizing the
// first rune the way the rest of the tool messages read.
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func logToolCall(ctx context.Context, tool string, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("tool", tool),
		zap.String("trace_id", logger.GenerateTraceID()),
	}, fields...)
	otelzap.Ctx(ctx).Info("Tool call", fields...)
}

// pushStatus summarizes the publish half of a mutation outcome.
func pushStatus(outcome *editor.Outcome) string {
	switch {
	case outcome.PublishNote != "":
		return outcome.PublishNote
	case outcome.NothingToCommit:
		return "no changes to commit"
	case outcome.Published:
		return "pushed to origin/" + outcome.Branch
	default:
		return ""
	}
}

// withPushSuffix appends the push-failure note to a success message. The
// edit is not rolled back when the push fails; the failure is informational.
func withPushSuffix(message string, outcome *editor.Outcome) string {
	if outcome.PublishNote != "" {
		return message + ", but push failed: " + outcome.PublishNote
	}
	return message
}

func (s *Server) handleReadText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return missingParam("file_path"), nil
	}
	pattern := req.GetString("pattern", "")
	useRegex := req.GetBool("use_regex", false)
	startLine := intArg(req, "start_line", 0)
	endLine := intArg(req, "end_line", 0)
	logToolCall(ctx, "read_text", zap.String("file_path", filePath))

	content, err := editor.ReadFile(filePath)
	if err != nil {
		if cerr.Is(err, editor.ErrNotFound) {
			return jsonResult(ReadTextResult{ToolResult: ToolResult{
				Message: "File not found: " + filePath,
			}}), nil
		}
		return jsonResult(ReadTextResult{ToolResult: ToolResult{
			Message: "Error reading text: " + err.Error(),
		}}), nil
	}

	if pattern != "" {
		match, err := editor.FindPattern(content, pattern, useRegex)
		if err != nil {
			if cerr.Is(err, editor.ErrPatternNotFound) {
				noun := "Text"
				if useRegex {
					noun = "Pattern"
				}
				return jsonResult(ReadTextResult{ToolResult: ToolResult{
					Message: fmt.Sprintf("%s not found in %s", noun, filePath),
				}}), nil
			}
			return jsonResult(ReadTextResult{ToolResult: ToolResult{
				Message: userMessage(err),
			}}), nil
		}
		noun := "text"
		if useRegex {
			noun = "pattern"
		}
		return jsonResult(ReadTextResult{
			ToolResult: ToolResult{Success: true, Message: fmt.Sprintf("Found %s match in %s", noun, filePath)},
			Text:       match.Text,
			StartLine:  intPtr(match.StartLine),
			EndLine:    intPtr(match.EndLine),
			MatchInfo: &MatchInfo{
				Pattern:    pattern,
				MatchStart: intPtr(match.MatchStart),
				MatchEnd:   intPtr(match.MatchEnd),
			},
		}), nil
	}

	if startLine == 0 || endLine == 0 {
		return jsonResult(ReadTextResult{ToolResult: ToolResult{
			Message: "Either pattern or both start_line and end_line must be provided",
		}}), nil
	}

	text, err := editor.ReadLineRange(content, startLine, endLine)
	if err != nil {
		return jsonResult(ReadTextResult{ToolResult: ToolResult{
			Message: userMessage(err),
		}}), nil
	}
	return jsonResult(ReadTextResult{
		ToolResult: ToolResult{Success: true, Message: fmt.Sprintf("Read lines %d-%d from %s", startLine, endLine, filePath)},
		Text:       text,
		StartLine:  intPtr(startLine),
		EndLine:    intPtr(endLine),
		MatchInfo:  &MatchInfo{TotalLines: intPtr(editor.LineCount(content))},
	}), nil
}

func (s *Server) handleWriteText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return missingParam("file_path"), nil
	}
	if _, ok := req.GetArguments()["new_content"]; !ok {
		return missingParam("new_content"), nil
	}
	newContent := req.GetString("new_content", "")
	pattern := req.GetString("pattern", "")
	useRegex := req.GetBool("use_regex", false)
	startLine := intArg(req, "start_line", 0)
	endLine := intArg(req, "end_line", 0)
	logToolCall(ctx, "write_text", zap.String("file_path", filePath))

	if pattern == "" && (startLine == 0 || endLine == 0) {
		return jsonResult(WriteTextResult{ToolResult: ToolResult{
			Message: "Either pattern or both start_line and end_line must be provided",
		}}), nil
	}

	mode := "write_text"
	if pattern != "" {
		if useRegex {
			mode = "write_text (regex)"
		} else {
			mode = "write_text (exact match)"
		}
	}

	data := &WriteTextData{FilePath: filePath}
	mutate := func() error {
		content, err := editor.ReadFile(filePath)
		if err != nil {
			return err
		}
		var updated string
		if pattern != "" {
			updated, err = editor.ReplacePattern(content, pattern, newContent, useRegex)
			if err != nil {
				return err
			}
			data.Pattern = pattern
			data.ReplacementLength = intPtr(len(newContent))
		} else {
			updated, err = editor.ReplaceLineRange(content, newContent, startLine, endLine)
			if err != nil {
				return err
			}
			data.LinesReplaced = intPtr(endLine - startLine + 1)
			data.NewLines = intPtr(editor.LineCount(newContent))
		}
		return editor.WriteFile(filePath, updated)
	}

	outcome, err := s.gate.Mutate(ctx, filePath, "Updated "+filePath+" via "+mode, mutate)
	if err != nil {
		if cerr.Is(err, editor.ErrSyncBlocked) {
			return jsonResult(WriteTextResult{
				ToolResult: ToolResult{Message: editor.BlockedMessage(outcome.Verdict)},
				SyncStatus: snapshotOf(outcome.Verdict),
			}), nil
		}
		return jsonResult(WriteTextResult{ToolResult: ToolResult{
			Message: mutationErrorMessage(err, filePath, useRegex),
		}}), nil
	}

	var message string
	switch {
	case pattern != "" && useRegex:
		message = fmt.Sprintf("Successfully replaced regex pattern in %s", filePath)
	case pattern != "":
		message = fmt.Sprintf("Successfully replaced text in %s", filePath)
	default:
		message = fmt.Sprintf("Successfully replaced lines %d-%d in %s", startLine, endLine, filePath)
	}
	data.PushStatus = pushStatus(outcome)
	return jsonResult(WriteTextResult{
		ToolResult: ToolResult{Success: true, Message: withPushSuffix(message, outcome)},
		Data:       data,
	}), nil
}

// mutationErrorMessage maps a failed mutation to its user-facing message.
func mutationErrorMessage(err error, filePath string, useRegex bool) string {
	switch {
	case cerr.Is(err, editor.ErrNotFound):
		return "File not found: " + filePath
	case cerr.Is(err, editor.ErrPatternNotFound):
		if useRegex {
			return "Pattern not found in " + filePath
		}
		return "Text not found in " + filePath
	default:
		return userMessage(err)
	}
}

func (s *Server) handleEditSelection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return missingParam("file_path"), nil
	}
	startLine := intArg(req, "start_line", 0)
	endLine := intArg(req, "end_line", 0)
	if startLine == 0 {
		return missingParam("start_line"), nil
	}
	if endLine == 0 {
		return missingParam("end_line"), nil
	}
	if _, ok := req.GetArguments()["new_content"]; !ok {
		return missingParam("new_content"), nil
	}
	newContent := req.GetString("new_content", "")
	logToolCall(ctx, "edit_latex_selection",
		zap.String("file_path", filePath),
		zap.Int("start_line", startLine),
		zap.Int("end_line", endLine))

	data := &EditSelectionData{
		FilePath:      filePath,
		LinesEdited:   endLine - startLine + 1,
		NewLines:      editor.LineCount(newContent),
		NewTextLength: len(newContent),
	}
	mutate := func() error {
		content, err := editor.ReadFile(filePath)
		if err != nil {
			return err
		}
		// Verify the selection exists before touching the file.
		oldText, err := editor.ReadLineRange(content, startLine, endLine)
		if err != nil {
			return err
		}
		data.OldTextLength = len(oldText)

		updated, err := editor.ReplaceLineRange(content, newContent, startLine, endLine)
		if err != nil {
			return err
		}
		return editor.WriteFile(filePath, updated)
	}

	outcome, err := s.gate.Mutate(ctx, filePath, "Updated "+filePath+" via edit_latex_selection", mutate)
	if err != nil {
		if cerr.Is(err, editor.ErrSyncBlocked) {
			return jsonResult(EditSelectionResult{
				ToolResult: ToolResult{Message: editor.BlockedMessage(outcome.Verdict)},
				SyncStatus: snapshotOf(outcome.Verdict),
			}), nil
		}
		return jsonResult(EditSelectionResult{ToolResult: ToolResult{
			Message: mutationErrorMessage(err, filePath, false),
		}}), nil
	}

	message := fmt.Sprintf("Successfully edited lines %d-%d in %s", startLine, endLine, filePath)
	data.PushStatus = pushStatus(outcome)
	return jsonResult(EditSelectionResult{
		ToolResult: ToolResult{Success: true, Message: withPushSuffix(message, outcome)},
		Data:       data,
	}), nil
}

func (s *Server) handleEditFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return missingParam("file_path"), nil
	}
	if _, ok := req.GetArguments()["content"]; !ok {
		return missingParam("content"), nil
	}
	content := req.GetString("content", "")
	logToolCall(ctx, "edit_latex_file", zap.String("file_path", filePath))

	mutate := func() error {
		return editor.WriteFileMkdir(filePath, content)
	}
	publishMessage := "Updated " + filePath + " via edit_latex_file"

	// A brand-new file cannot clobber remote edits, so only gate overwrites.
	var outcome *editor.Outcome
	var err error
	if _, statErr := os.Stat(filePath); statErr == nil {
		outcome, err = s.gate.Mutate(ctx, filePath, publishMessage, mutate)
	} else {
		outcome, err = s.gate.MutateUnchecked(ctx, filePath, publishMessage, mutate)
	}
	if err != nil {
		if cerr.Is(err, editor.ErrSyncBlocked) {
			return jsonResult(EditFileResult{
				ToolResult: ToolResult{Message: editor.BlockedMessage(outcome.Verdict)},
				SyncStatus: snapshotOf(outcome.Verdict),
			}), nil
		}
		return jsonResult(EditFileResult{ToolResult: ToolResult{
			Message: "Error editing LaTeX file: " + err.Error(),
		}}), nil
	}

	return jsonResult(EditFileResult{
		ToolResult: ToolResult{Success: true, Message: withPushSuffix("Successfully edited "+filePath, outcome)},
		Data: &EditFileData{
			FilePath:     filePath,
			BytesWritten: len(content),
			Lines:        editor.LineCount(content),
			PushStatus:   pushStatus(outcome),
		},
	}), nil
}

func (s *Server) handlePush(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := req.GetString("repo_path", ".")
	commitMessage := req.GetString("commit_message", "Update from MCP server")
	logToolCall(ctx, "push_to_overleaf", zap.String("repo_path", repoPath))

	report, err := s.git.Publish(ctx, repoPath, commitMessage)
	if err != nil {
		return jsonResult(PushResult{ToolResult: ToolResult{
			Message: gitErrorMessage(err, repoPath),
		}}), nil
	}

	if report.NothingToCommit {
		return jsonResult(PushResult{
			ToolResult: ToolResult{Success: true, Message: "No changes to commit"},
			Data:       &PushData{Output: report.Output},
		}), nil
	}

	message := "Successfully pushed changes to Overleaf"
	if report.Branch != "" && report.Branch != "main" {
		message += fmt.Sprintf(" (%s branch)", report.Branch)
	}
	return jsonResult(PushResult{
		ToolResult: ToolResult{Success: true, Message: message},
		Data:       &PushData{Branch: report.Branch, Output: report.Output},
	}), nil
}

func (s *Server) handlePull(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectURL := req.GetString("project_url", "")
	localPath := req.GetString("local_path", "")
	token := req.GetString("token", "")
	logToolCall(ctx, "pull_overleaf_project")

	report, err := s.svc.Pull(ctx, projectURL, localPath, token)
	if err != nil {
		var message string
		switch {
		case cerr.Is(err, overleaf.ErrNoProjectURL), cerr.Is(err, overleaf.ErrNoToken):
			message = userMessage(err)
		case cerr.Is(err, execute.ErrTimedOut):
			message = "Git operation timed out"
		default:
			message = userMessage(err)
		}
		return jsonResult(PullResult{ToolResult: ToolResult{Message: message}}), nil
	}

	message := "Successfully pulled latest changes to " + report.LocalPath
	if report.Cloned {
		message = "Successfully cloned Overleaf project to " + report.LocalPath
	}
	return jsonResult(PullResult{
		ToolResult:  ToolResult{Success: true, Message: message},
		LocalPath:   report.LocalPath,
		FilesPulled: report.Files,
	}), nil
}

func (s *Server) handleSyncStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := req.GetString("repo_path", ".")
	logToolCall(ctx, "check_sync_status", zap.String("repo_path", repoPath))

	verdict, err := s.git.Evaluate(ctx, repoPath)
	if err != nil {
		return jsonResult(SyncStatusResult{ToolResult: ToolResult{
			Message: gitErrorMessage(err, repoPath),
		}}), nil
	}

	return jsonResult(SyncStatusResult{
		ToolResult:         ToolResult{Success: true, Message: verdict.Summary()},
		IsSynced:           verdict.IsSynced,
		LocalAhead:         verdict.LocalAhead(),
		RemoteAhead:        verdict.RemoteAhead(),
		HasUncommitted:     verdict.HasUncommittedChanges,
		Warnings:           verdict.Warnings,
		Suggestions:        verdict.Suggestions,
		LocalCommitsAhead:  verdict.LocalCommitsAhead,
		RemoteCommitsAhead: verdict.RemoteCommitsAhead,
		RemoteStateKnown:   verdict.RemoteStateKnown,
	}), nil
}

// gitErrorMessage maps git-layer failures to their user-facing messages.
func gitErrorMessage(err error, repoPath string) string {
	switch {
	case cerr.Is(err, vcs.ErrNotAWorkingTree):
		return "Not a git repository: " + repoPath
	case cerr.Is(err, execute.ErrTimedOut):
		return "Git operation timed out"
	default:
		return userMessage(err)
	}
}
