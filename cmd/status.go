// cmd/status.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latexops/overleaf-mcp/pkg/cli"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// StatusCmd checks whether a local project is in sync with Overleaf, the same
// check the MCP check_sync_status tool runs.
var StatusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Check sync status between a local project and Overleaf",
	Args:  cobra.MaximumNArgs(1),
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		cfg := overleaf.Load()
		git := vcs.New(vcs.NewRunner(), cfg.DefaultBranch)

		verdict, err := git.Evaluate(rc.Ctx, path)
		if err != nil {
			return err
		}

		fmt.Println(verdict.Summary())
		for i, warning := range verdict.Warnings {
			fmt.Printf("  • %s\n", warning)
			fmt.Printf("    %s\n", verdict.Suggestions[i])
		}
		return nil
	}),
}
