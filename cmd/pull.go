// cmd/pull.go

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/cli"
	"github.com/latexops/overleaf-mcp/pkg/overleaf"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

var (
	pullProjectURL string
	pullLocalPath  string
	pullToken      string
)

// PullCmd clones or updates an Overleaf project from the command line.
var PullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Clone or update an Overleaf project",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg := overleaf.Load()
		git := vcs.New(vcs.NewRunner(), cfg.DefaultBranch)
		svc := overleaf.NewService(cfg, git)

		report, err := svc.Pull(rc.Ctx, pullProjectURL, pullLocalPath, pullToken)
		if err != nil {
			return err
		}

		verb := "Updated"
		if report.Cloned {
			verb = "Cloned"
		}
		rc.Log.Info("Pull complete",
			zap.String("path", report.LocalPath),
			zap.Bool("cloned", report.Cloned))
		fmt.Printf("%s project at %s (%d files)\n", verb, report.LocalPath, len(report.Files))
		return nil
	}),
}

func init() {
	PullCmd.Flags().StringVar(&pullProjectURL, "project-url", "", "Overleaf project URL or git URL (default: OVERLEAF_PROJECT_URL)")
	PullCmd.Flags().StringVar(&pullLocalPath, "path", "", "local directory for the project")
	PullCmd.Flags().StringVar(&pullToken, "token", "", "Overleaf git token (default: OVERLEAF_GIT_TOKEN)")
}
