// pkg/vcs/runner.go

// Package vcs reconciles a local working tree against its Overleaf git
// remote. It runs the git binary through pkg/execute and reduces the
// command outputs into a SyncVerdict, and carries out the publish
// (stage-commit-push) and pull/clone sequences.
package vcs

import (
	"context"
	"time"

	"github.com/latexops/overleaf-mcp/pkg/execute"
)

// Per-command deadlines. Cheap local queries get short ones; anything that
// talks to the remote gets longer.
const (
	statusTimeout  = 10 * time.Second
	branchTimeout  = 10 * time.Second
	revListTimeout = 10 * time.Second
	fetchTimeout   = 30 * time.Second
	stageTimeout   = 30 * time.Second
	commitTimeout  = 30 * time.Second
	pushTimeout    = 60 * time.Second
	pullTimeout    = 60 * time.Second
	cloneTimeout   = 120 * time.Second
)

// Runner executes a single git subcommand against a working tree and returns
// the captured result. Implementations never treat a non-zero exit as an
// error; callers inspect the exit code themselves.
type Runner interface {
	Git(ctx context.Context, dir string, timeout time.Duration, args ...string) (*execute.Result, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by the external git binary.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Git(ctx context.Context, dir string, timeout time.Duration, args ...string) (*execute.Result, error) {
	return execute.Capture(ctx, execute.Options{
		Command: "git",
		Args:    args,
		Dir:     dir,
		Timeout: timeout,
	})
}
