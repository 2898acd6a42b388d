// pkg/vcs/publish.go

package vcs

import (
	"context"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
)

// PublishReport describes the outcome of a stage-commit-push sequence.
type PublishReport struct {
	// NothingToCommit is true when the working tree was already clean; the
	// publish is then a successful no-op and no push is attempted unless a
	// commit happened.
	NothingToCommit bool
	Pushed          bool
	Branch          string
	Output          string
}

// Publish stages all changes in the working tree at path, commits them with
// message, and pushes to the remote default branch, retrying the push against
// the alternate branch candidates on failure.
func (c *Client) Publish(ctx context.Context, path, message string) (*PublishReport, error) {
	ctx, span := telemetry.Start(ctx, "vcs.Publish")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	if _, err := openWorkingTree(path); err != nil {
		return nil, cerr.Wrapf(ErrNotAWorkingTree, "%s", path)
	}

	stage, err := c.run.Git(ctx, path, stageTimeout, "add", "-A")
	if err != nil {
		return nil, err
	}
	if !stage.Ok() {
		return nil, cerr.Mark(
			cerr.Newf("failed to stage changes: %s", strings.TrimSpace(stage.Stderr)),
			ErrCommandFailed)
	}

	commit, err := c.run.Git(ctx, path, commitTimeout, "commit", "-m", message)
	if err != nil {
		return nil, err
	}
	if strings.Contains(strings.ToLower(commit.Stdout), "nothing to commit") {
		logger.Debug("Nothing to commit", zap.String("path", path))
		return &PublishReport{NothingToCommit: true, Output: commit.Stdout}, nil
	}
	if !commit.Ok() {
		return nil, cerr.Mark(
			cerr.Newf("failed to commit: %s", strings.TrimSpace(commit.Stderr+commit.Stdout)),
			ErrCommandFailed)
	}

	var lastErr string
	for _, branch := range c.branchCandidates(ctx, path) {
		push, err := c.run.Git(ctx, path, pushTimeout, "push", "origin", branch)
		if err != nil {
			return nil, err
		}
		if push.Ok() {
			logger.Info("Pushed changes to Overleaf",
				zap.String("path", path), zap.String("branch", branch))
			return &PublishReport{Pushed: true, Branch: branch, Output: push.Stdout}, nil
		}
		lastErr = strings.TrimSpace(push.Stderr)
	}
	return nil, cerr.Mark(
		cerr.Newf("failed to push to Overleaf: %s", lastErr),
		ErrCommandFailed)
}
