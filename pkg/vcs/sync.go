// pkg/vcs/sync.go

package vcs

import (
	"context"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
)

// Evaluate computes a fresh SyncVerdict for the working tree rooted at path.
//
// The verdict favors availability over precision: a failed fetch degrades to
// evaluating against the last-known remote state, and ahead/behind counts
// that cannot be computed for any branch candidate surface as an explicit
// unknown-remote warning. Only a command timeout aborts evaluation outright.
func (c *Client) Evaluate(ctx context.Context, path string) (*SyncVerdict, error) {
	ctx, span := telemetry.Start(ctx, "vcs.Evaluate")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	repo, err := openWorkingTree(path)
	if err != nil {
		return nil, cerr.Wrapf(ErrNotAWorkingTree, "%s", path)
	}

	verdict := &SyncVerdict{RemoteStateKnown: true}

	status, err := c.run.Git(ctx, path, statusTimeout, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	verdict.HasUncommittedChanges = strings.TrimSpace(status.Stdout) != ""

	if !hasOriginRemote(repo) {
		// Local-only tree: nothing to diverge from.
		logger.Debug("No origin remote, skipping remote checks", zap.String("path", path))
		verdict.finalize()
		return verdict, nil
	}

	// Refresh remote knowledge. Failure here is not fatal; the counts below
	// then reflect the last fetched state.
	if fetch, fetchErr := c.run.Git(ctx, path, fetchTimeout, "fetch", "origin"); fetchErr != nil {
		logger.Warn("Fetch failed, evaluating against possibly stale remote state",
			zap.String("path", path), zap.Error(fetchErr))
	} else if !fetch.Ok() {
		logger.Warn("Fetch exited non-zero, evaluating against possibly stale remote state",
			zap.String("path", path),
			zap.Int("exit_code", fetch.ExitCode),
			zap.String("stderr", strings.TrimSpace(fetch.Stderr)))
	}

	remoteAhead, localAhead, known, err := c.aheadBehind(ctx, path)
	if err != nil {
		return nil, err
	}
	verdict.RemoteCommitsAhead = remoteAhead
	verdict.LocalCommitsAhead = localAhead
	verdict.RemoteStateKnown = known

	verdict.finalize()
	logger.Debug("Sync verdict computed",
		zap.String("path", path),
		zap.Bool("is_synced", verdict.IsSynced),
		zap.Bool("has_uncommitted", verdict.HasUncommittedChanges),
		zap.Int("local_ahead", verdict.LocalCommitsAhead),
		zap.Int("remote_ahead", verdict.RemoteCommitsAhead),
		zap.Bool("remote_state_known", verdict.RemoteStateKnown))
	return verdict, nil
}

// aheadBehind computes the commit counts on both sides of HEAD against the
// first default-branch candidate the repository actually has. known is false
// when every candidate fails.
func (c *Client) aheadBehind(ctx context.Context, path string) (remoteAhead, localAhead int, known bool, err error) {
	for _, branch := range c.branchCandidates(ctx, path) {
		remote := "origin/" + branch

		behind, ok, err := c.revListCount(ctx, path, "HEAD.."+remote)
		if err != nil {
			return 0, 0, false, err
		}
		if !ok {
			continue
		}
		ahead, ok, err := c.revListCount(ctx, path, remote+"..HEAD")
		if err != nil {
			return 0, 0, false, err
		}
		if !ok {
			continue
		}
		return behind, ahead, true, nil
	}
	return 0, 0, false, nil
}

// revListCount runs `git rev-list --count <range>`. ok is false when the
// range does not resolve (unknown branch), which callers treat as "try the
// next candidate". A timeout is returned as an error and aborts evaluation.
func (c *Client) revListCount(ctx context.Context, dir, revRange string) (count int, ok bool, err error) {
	result, err := c.run.Git(ctx, dir, revListTimeout, "rev-list", "--count", revRange)
	if err != nil {
		return 0, false, err
	}
	if !result.Ok() {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(result.Stdout))
	if convErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}
