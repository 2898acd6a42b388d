// cmd/push.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/cli"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

var pushMessage string

// PushCmd commits and pushes local changes to Overleaf from the command line.
var PushCmd = &cobra.Command{
	Use:   "push [path]",
	Short: "Commit and push local changes to Overleaf",
	Args:  cobra.MaximumNArgs(1),
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		cfg := overleaf.Load()
		git := vcs.New(vcs.NewRunner(), cfg.DefaultBranch)

		report, err := git.Publish(rc.Ctx, path, pushMessage)
		if err != nil {
			return err
		}
		if report.NothingToCommit {
			fmt.Println("No changes to commit")
			return nil
		}
		rc.Log.Info("Push complete", zap.String("branch", report.Branch))
		fmt.Printf("Pushed changes to Overleaf (%s branch)\n", report.Branch)
		return nil
	}),
}

func init() {
	PushCmd.Flags().StringVarP(&pushMessage, "message", "m", "Update from MCP server", "git commit message")
}
