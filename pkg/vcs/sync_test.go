// pkg/vcs/sync_test.go

package vcs

import (
	"context"
	"strings"
	"testing"
	"time"

	cerr "github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latexops/overleaf-mcp/pkg/execute"
)

// fakeRunner scripts git invocations by their joined argument list. Unknown
// invocations succeed with empty output, which matches git's behavior for the
// commands the happy paths run.
type fakeRunner struct {
	results map[string]scripted
	calls   []string
}

type scripted struct {
	res *execute.Result
	err error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: map[string]scripted{}}
}

func (f *fakeRunner) on(args string, res *execute.Result, err error) {
	f.results[args] = scripted{res: res, err: err}
}

func (f *fakeRunner) Git(ctx context.Context, dir string, timeout time.Duration, args ...string) (*execute.Result, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if s, ok := f.results[key]; ok {
		return s.res, s.err
	}
	return &execute.Result{ExitCode: 0}, nil
}

func (f *fakeRunner) called(args string) bool {
	for _, call := range f.calls {
		if call == args {
			return true
		}
	}
	return false
}

func ok(stdout string) *execute.Result {
	return &execute.Result{ExitCode: 0, Stdout: stdout}
}

func failed(stderr string) *execute.Result {
	return &execute.Result{ExitCode: 128, Stderr: stderr}
}

// initRepo creates a real repository on disk so openWorkingTree succeeds; the
// scripted runner supplies all command outputs.
func initRepo(t *testing.T, withOrigin bool) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	if withOrigin {
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"https://git.overleaf.com/68400023f2d5a3b1c09ab1e2"},
		})
		require.NoError(t, err)
	}
	return dir
}

// scriptCounts scripts both rev-list directions for a branch.
func scriptCounts(run *fakeRunner, branch string, remoteAhead, localAhead string) {
	run.on("rev-list --count HEAD..origin/"+branch, ok(remoteAhead+"\n"), nil)
	run.on("rev-list --count origin/"+branch+"..HEAD", ok(localAhead+"\n"), nil)
}

func TestEvaluateCleanAndSynced(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("status --porcelain", ok(""), nil)
	run.on("symbolic-ref --short refs/remotes/origin/HEAD", failed("no such ref"), nil)
	scriptCounts(run, "main", "0", "0")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, verdict.IsSynced)
	assert.True(t, verdict.RemoteStateKnown)
	assert.False(t, verdict.HasUncommittedChanges)
	assert.Empty(t, verdict.Warnings)
	assert.Empty(t, verdict.Suggestions)
	assert.Equal(t, "Project is fully synchronized with Overleaf cloud", verdict.Summary())
	assert.True(t, run.called("fetch origin"))
}

func TestEvaluateUncommittedChanges(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("status --porcelain", ok(" M main.tex\n?? figures/plot.pdf\n"), nil)
	scriptCounts(run, "main", "0", "0")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.False(t, verdict.IsSynced)
	assert.True(t, verdict.HasUncommittedChanges)
	require.Len(t, verdict.Warnings, 1)
	assert.Equal(t, "You have uncommitted local changes", verdict.Warnings[0])
	assert.Equal(t, "Commit your changes before syncing", verdict.Suggestions[0])
}

func TestEvaluateRemoteAhead(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	scriptCounts(run, "main", "3", "0")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.False(t, verdict.IsSynced)
	assert.Equal(t, 3, verdict.RemoteCommitsAhead)
	assert.True(t, verdict.RemoteAhead())
	require.Len(t, verdict.Warnings, 1)
	assert.Equal(t, "Overleaf cloud has 3 commit(s) that are not in your local project", verdict.Warnings[0])
	assert.Equal(t, "Run pull_overleaf_project to sync changes from Overleaf cloud", verdict.Suggestions[0])
}

func TestEvaluateLocalAhead(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	scriptCounts(run, "main", "0", "2")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, verdict.LocalCommitsAhead)
	assert.True(t, verdict.LocalAhead())
	require.Len(t, verdict.Warnings, 1)
	assert.Equal(t, "Your local project has 2 commit(s) that are not on Overleaf cloud", verdict.Warnings[0])
	assert.Equal(t, "Run push_to_overleaf to sync your local changes to Overleaf cloud", verdict.Suggestions[0])
}

func TestEvaluateWarningOrderIsFixed(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("status --porcelain", ok(" M main.tex\n"), nil)
	scriptCounts(run, "main", "1", "1")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, verdict.Warnings, 3)
	require.Len(t, verdict.Suggestions, 3)
	assert.Equal(t, "You have uncommitted local changes", verdict.Warnings[0])
	assert.Contains(t, verdict.Warnings[1], "Overleaf cloud has 1 commit(s)")
	assert.Contains(t, verdict.Warnings[2], "Your local project has 1 commit(s)")
	assert.Equal(t, "Project has unsynchronized changes: 3 issue(s) found", verdict.Summary())
}

func TestEvaluateFallsBackToMaster(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("rev-list --count HEAD..origin/main", failed("unknown revision"), nil)
	scriptCounts(run, "master", "0", "1")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, verdict.RemoteStateKnown)
	assert.Equal(t, 1, verdict.LocalCommitsAhead)
}

func TestEvaluateUnknownRemoteState(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("rev-list --count HEAD..origin/main", failed("unknown revision"), nil)
	run.on("rev-list --count HEAD..origin/master", failed("unknown revision"), nil)

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.False(t, verdict.RemoteStateKnown)
	assert.False(t, verdict.IsSynced)
	require.Len(t, verdict.Warnings, 1)
	assert.Equal(t, "Unable to determine the state of the remote branch", verdict.Warnings[0])
	assert.Equal(t, 0, verdict.LocalCommitsAhead)
	assert.Equal(t, 0, verdict.RemoteCommitsAhead)
}

func TestEvaluateNoOriginRemote(t *testing.T) {
	dir := initRepo(t, false)
	run := newFakeRunner()
	run.on("status --porcelain", ok(""), nil)

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, verdict.IsSynced)
	assert.True(t, verdict.RemoteStateKnown)
	assert.False(t, run.called("fetch origin"))
	for _, call := range run.calls {
		assert.NotContains(t, call, "rev-list")
	}
}

func TestEvaluateNotARepository(t *testing.T) {
	run := newFakeRunner()

	_, err := New(run, "").Evaluate(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, cerr.Is(err, ErrNotAWorkingTree))
	assert.Empty(t, run.calls)
}

func TestEvaluateStatusTimeoutAborts(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("status --porcelain", nil, cerr.Wrap(execute.ErrTimedOut, "git status"))

	_, err := New(run, "").Evaluate(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, execute.ErrTimedOut))
}

func TestEvaluateRevListTimeoutAborts(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("rev-list --count HEAD..origin/main", nil, cerr.Wrap(execute.ErrTimedOut, "git rev-list"))

	_, err := New(run, "").Evaluate(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, execute.ErrTimedOut))
}

func TestEvaluateFetchFailureDegrades(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("fetch origin", nil, cerr.Wrap(execute.ErrTimedOut, "git fetch"))
	scriptCounts(run, "main", "1", "0")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, verdict.RemoteCommitsAhead)
	assert.True(t, verdict.RemoteStateKnown)
}

func TestEvaluateUsesConfiguredBranchFirst(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	scriptCounts(run, "devel", "0", "4")

	verdict, err := New(run, "devel").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, verdict.LocalCommitsAhead)
	assert.True(t, run.called("rev-list --count HEAD..origin/devel"))
	assert.False(t, run.called("rev-list --count HEAD..origin/main"))
}

func TestEvaluateUsesDiscoveredDefaultBranch(t *testing.T) {
	dir := initRepo(t, true)
	run := newFakeRunner()
	run.on("symbolic-ref --short refs/remotes/origin/HEAD", ok("origin/trunk\n"), nil)
	scriptCounts(run, "trunk", "0", "0")

	verdict, err := New(run, "").Evaluate(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, verdict.IsSynced)
	assert.True(t, run.called("rev-list --count HEAD..origin/trunk"))
	assert.False(t, run.called("rev-list --count HEAD..origin/main"))
}

func TestBranchCandidatesDeduplicates(t *testing.T) {
	run := newFakeRunner()
	run.on("symbolic-ref --short refs/remotes/origin/HEAD", ok("origin/main\n"), nil)

	candidates := New(run, "main").branchCandidates(context.Background(), ".")
	assert.Equal(t, []string{"main", "master"}, candidates)
}
