// cmd/serve.go

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/cli"
	"github.com/latexops/overleaf-mcp/pkg/mcpserver"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
)

var (
	serveAddr  string
	serveStdio bool
)

// ServeCmd runs the MCP server. The default transport is stateless
// streamable HTTP; --stdio switches to the stdio transport for clients that
// spawn the server as a subprocess.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		return runServe(rc, cmd)
	}),
}

func init() {
	for _, c := range []*cobra.Command{ServeCmd, RootCmd} {
		c.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address for the HTTP transport")
		c.Flags().BoolVar(&serveStdio, "stdio", false, "serve over stdio instead of HTTP")
	}
}

func runServe(rc *cli.RuntimeContext, cmd *cobra.Command) error {
	cfg := overleaf.Load()
	srv := mcpserver.New(cfg)

	if serveStdio {
		rc.Log.Info("Starting MCP server on stdio")
		return srv.ServeStdio()
	}
	rc.Log.Info("Starting MCP server", zap.String("addr", serveAddr))
	return srv.ServeHTTP(serveAddr)
}
