// pkg/vcs/client.go

package vcs

import (
	"context"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// fixedBranchCandidates are tried when the remote's default branch cannot be
// discovered.
var fixedBranchCandidates = []string{"main", "master"}

// Client runs git operations against working trees. DefaultBranch, when set,
// overrides remote default-branch discovery.
type Client struct {
	run           Runner
	DefaultBranch string
}

// New returns a Client using the given runner. defaultBranch may be empty,
// in which case the remote's symbolic HEAD is consulted before falling back
// to the fixed candidates.
func New(runner Runner, defaultBranch string) *Client {
	if runner == nil {
		runner = NewRunner()
	}
	return &Client{run: runner, DefaultBranch: defaultBranch}
}

// branchCandidates returns default-branch names to try, in order: the
// configured override, the remote's discovered symbolic HEAD, then the fixed
// candidates. Duplicates are removed, order preserved.
func (c *Client) branchCandidates(ctx context.Context, dir string) []string {
	var candidates []string
	if c.DefaultBranch != "" {
		candidates = append(candidates, c.DefaultBranch)
	}
	if discovered := c.discoverDefaultBranch(ctx, dir); discovered != "" {
		candidates = append(candidates, discovered)
	}
	candidates = append(candidates, fixedBranchCandidates...)

	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0]
	for _, name := range candidates {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	return unique
}

// discoverDefaultBranch asks the local clone which branch the remote HEAD
// points at. Returns "" when the ref is absent (common on fresh clones that
// never ran remote set-head).
func (c *Client) discoverDefaultBranch(ctx context.Context, dir string) string {
	result, err := c.run.Git(ctx, dir, branchTimeout,
		"symbolic-ref", "--short", "refs/remotes/origin/HEAD")
	if err != nil || !result.Ok() {
		return ""
	}
	ref := strings.TrimSpace(result.Stdout)
	branch := strings.TrimPrefix(ref, "origin/")
	if branch == "" {
		return ""
	}
	otelzap.Ctx(ctx).Debug("Discovered remote default branch",
		zap.String("branch", branch))
	return branch
}
