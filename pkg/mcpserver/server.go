// pkg/mcpserver/server.go

// Package mcpserver exposes the Overleaf editing operations as MCP tools
// over stdio or streamable HTTP.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/latexops/overleaf-mcp/pkg/editor"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// Server wires the git client, edit gate, and Overleaf service behind the
// MCP tool surface.
type Server struct {
	git  *vcs.Client
	gate *editor.Gate
	svc  *overleaf.Service
	mcp  *server.MCPServer
}

// New builds a Server from configuration, using the external git binary.
func New(cfg *overleaf.Config) *Server {
	git := vcs.New(vcs.NewRunner(), cfg.DefaultBranch)
	return newWith(git, editor.NewGate(git, git), overleaf.NewService(cfg, git))
}

// newWith lets tests inject fakes.
func newWith(git *vcs.Client, gate *editor.Gate, svc *overleaf.Service) *Server {
	s := &Server{
		git:  git,
		gate: gate,
		svc:  svc,
		mcp: server.NewMCPServer("overleaf-mcp", Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving the stdio transport until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// ServeHTTP blocks serving the stateless streamable-HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp, server.WithStateLess(true))
	return httpServer.Start(addr)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("read_text",
		mcp.WithDescription("Search for and read a specific matched section from a file"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the file to read from")),
		mcp.WithString("pattern", mcp.Description("Text pattern to search for; omit to read by line numbers")),
		mcp.WithNumber("start_line", mcp.Description("Starting line number (1-indexed, required without pattern)")),
		mcp.WithNumber("end_line", mcp.Description("Ending line number (1-indexed, inclusive, required without pattern)")),
		mcp.WithBoolean("use_regex", mcp.Description("Treat pattern as a regular expression (default: exact match)")),
	), s.handleReadText)

	s.mcp.AddTool(mcp.NewTool("write_text",
		mcp.WithDescription("Replace a designated section in a file with new text"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the file to edit")),
		mcp.WithString("new_content", mcp.Required(), mcp.Description("The new content to replace the section with")),
		mcp.WithString("pattern", mcp.Description("Text pattern to search for and replace; omit to replace by line numbers")),
		mcp.WithNumber("start_line", mcp.Description("Starting line number (1-indexed, required without pattern)")),
		mcp.WithNumber("end_line", mcp.Description("Ending line number (1-indexed, inclusive, required without pattern)")),
		mcp.WithBoolean("use_regex", mcp.Description("Treat pattern as a regular expression (default: exact match)")),
	), s.handleWriteText)

	s.mcp.AddTool(mcp.NewTool("edit_latex_selection",
		mcp.WithDescription("Edit a selection of text in a LaTeX file according to LaTeX rules"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the LaTeX file to edit")),
		mcp.WithNumber("start_line", mcp.Required(), mcp.Description("Starting line number (1-indexed)")),
		mcp.WithNumber("end_line", mcp.Required(), mcp.Description("Ending line number (1-indexed, inclusive)")),
		mcp.WithString("new_content", mcp.Required(), mcp.Description("The new LaTeX content to replace the selection with")),
	), s.handleEditSelection)

	s.mcp.AddTool(mcp.NewTool("edit_latex_file",
		mcp.WithDescription("Edit a LaTeX project file with new content following LaTeX rules"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the LaTeX file (created if it does not exist)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("The complete LaTeX content for the file")),
	), s.handleEditFile)

	s.mcp.AddTool(mcp.NewTool("push_to_overleaf",
		mcp.WithDescription("Push local changes to Overleaf project automatically"),
		mcp.WithString("repo_path", mcp.Description("Path to the git repository (default: current directory)")),
		mcp.WithString("commit_message", mcp.Description("Git commit message for the changes")),
	), s.handlePush)

	s.mcp.AddTool(mcp.NewTool("pull_overleaf_project",
		mcp.WithDescription("Pull a designated project from Overleaf using project URL and save to local directory"),
		mcp.WithString("project_url", mcp.Description("Overleaf project URL or git URL; default from OVERLEAF_PROJECT_URL")),
		mcp.WithString("local_path", mcp.Description("Local directory for the project; default derived from the clone dir and project id")),
		mcp.WithString("token", mcp.Description("Overleaf git token; default from OVERLEAF_GIT_TOKEN")),
	), s.handlePull)

	s.mcp.AddTool(mcp.NewTool("check_sync_status",
		mcp.WithDescription("Check for unsynchronized changes between Overleaf cloud and local project"),
		mcp.WithString("repo_path", mcp.Description("Path to the git repository (default: current directory)")),
	), s.handleSyncStatus)
}
