// cmd/root.go

// Package cmd defines the overleaf-mcp command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/cli"
	"github.com/latexops/overleaf-mcp/pkg/logger"
)

// RootCmd is the base command. Without a subcommand it starts the MCP server,
// matching how MCP clients invoke the binary.
var RootCmd = &cobra.Command{
	Use:   "overleaf-mcp",
	Short: "MCP server for editing Overleaf projects through git",
	Long: `overleaf-mcp exposes Overleaf project editing as MCP tools: targeted
reads and writes of LaTeX sources, gated behind a git sync check so local
edits never silently clobber changes made in the Overleaf web editor.`,
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		return runServe(rc, cmd)
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, sub := range []*cobra.Command{
		ServeCmd,
		StatusCmd,
		PullCmd,
		PushCmd,
	} {
		RootCmd.AddCommand(sub)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer func() {
		// Sync on stderr-backed cores returns ENOTTY noise; ignore it.
		_ = logger.Sync()
	}()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		logger.L().Error("Command execution failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
