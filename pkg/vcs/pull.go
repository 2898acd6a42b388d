// pkg/vcs/pull.go

package vcs

import (
	"context"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
)

// Pull updates the working tree at path from origin, trying each
// default-branch candidate in order.
func (c *Client) Pull(ctx context.Context, path string) error {
	ctx, span := telemetry.Start(ctx, "vcs.Pull")
	defer span.End()

	if _, err := openWorkingTree(path); err != nil {
		return cerr.Wrapf(ErrNotAWorkingTree, "%s", path)
	}

	var lastErr string
	for _, branch := range c.branchCandidates(ctx, path) {
		pull, err := c.run.Git(ctx, path, pullTimeout, "pull", "origin", branch)
		if err != nil {
			return err
		}
		if pull.Ok() {
			otelzap.Ctx(ctx).Info("Pulled latest changes",
				zap.String("path", path), zap.String("branch", branch))
			return nil
		}
		lastErr = strings.TrimSpace(pull.Stderr)
	}
	return cerr.Mark(
		cerr.Newf("failed to pull changes: %s", lastErr),
		ErrCommandFailed)
}

// Clone clones remoteURL into dest. The URL may embed credentials; it is
// never logged.
func (c *Client) Clone(ctx context.Context, remoteURL, dest string) error {
	ctx, span := telemetry.Start(ctx, "vcs.Clone")
	defer span.End()

	clone, err := c.run.Git(ctx, "", cloneTimeout, "clone", remoteURL, dest)
	if err != nil {
		return err
	}
	if !clone.Ok() {
		return cerr.Mark(
			cerr.Newf("failed to clone project: %s", strings.TrimSpace(clone.Stderr)),
			ErrCommandFailed)
	}
	otelzap.Ctx(ctx).Info("Cloned project", zap.String("dest", dest))
	return nil
}
