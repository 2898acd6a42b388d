// pkg/editor/gate.go

package editor

import (
	"context"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// ErrSyncBlocked reports a mutation refused because the working tree has
// diverged from the remote. The verdict on the returned Outcome carries the
// warnings.
var ErrSyncBlocked = cerr.New("working tree out of sync")

// Evaluator computes a sync verdict for a working tree root.
type Evaluator interface {
	Evaluate(ctx context.Context, path string) (*vcs.SyncVerdict, error)
}

// Publisher runs the stage-commit-push sequence for a working tree root.
type Publisher interface {
	Publish(ctx context.Context, path, message string) (*vcs.PublishReport, error)
}

// Gate wraps content mutations: it refuses them when the enclosing working
// tree has sync warnings, and publishes them when they succeed.
//
// The gate is advisory, not a lock. A failing sync check never blocks an
// edit on its own; only a clean, explicit warning list does. Mutations on
// paths outside any working tree run unguarded and unpublished.
type Gate struct {
	eval   Evaluator
	pub    Publisher
	locate func(string) (string, bool)
}

// NewGate builds a Gate over the given evaluator and publisher.
func NewGate(eval Evaluator, pub Publisher) *Gate {
	return &Gate{eval: eval, pub: pub, locate: vcs.FindWorkingTree}
}

// Outcome reports what a guarded mutation did. A publish failure does not
// flip the overall success: the edit is not rolled back, and PublishNote
// carries the diagnostic.
type Outcome struct {
	Edited          bool
	Published       bool
	NothingToCommit bool
	Branch          string
	PublishNote     string
	Verdict         *vcs.SyncVerdict
}

// Mutate runs mutate under the sync gate and publishes the result.
//
// Blocked mutations return an Outcome with the verdict attached and an error
// wrapping ErrSyncBlocked; no write happens. A failed mutation returns its
// error verbatim and skips the publish.
func (g *Gate) Mutate(ctx context.Context, path, publishMessage string, mutate func() error) (*Outcome, error) {
	ctx, span := telemetry.Start(ctx, "editor.Mutate")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	root, inTree := g.locate(path)
	if !inTree {
		if err := mutate(); err != nil {
			return nil, err
		}
		logger.Debug("Edited file outside any working tree", zap.String("path", path))
		return &Outcome{Edited: true}, nil
	}

	verdict, err := g.eval.Evaluate(ctx, root)
	if err != nil {
		// Advisory only: a sync check that cannot run must never deadlock
		// editing.
		logger.Warn("Sync check failed, proceeding with edit",
			zap.String("path", path), zap.Error(err))
	} else if len(verdict.Warnings) > 0 {
		logger.Info("Edit refused: working tree out of sync",
			zap.String("path", path),
			zap.Strings("warnings", verdict.Warnings))
		return &Outcome{Verdict: verdict}, cerr.Wrapf(ErrSyncBlocked, "%s", root)
	}

	if err := mutate(); err != nil {
		return nil, err
	}

	outcome := &Outcome{Edited: true}
	report, err := g.pub.Publish(ctx, root, publishMessage)
	if err != nil {
		outcome.PublishNote = err.Error()
		logger.Warn("Publish after edit failed",
			zap.String("path", path), zap.Error(err))
		return outcome, nil
	}
	outcome.Published = report.Pushed
	outcome.NothingToCommit = report.NothingToCommit
	outcome.Branch = report.Branch
	return outcome, nil
}

// MutateUnchecked runs mutate and publishes without consulting the sync
// evaluator. Used when creating a file that does not exist yet: there is
// nothing remote the write could clobber, but the result still needs
// publishing.
func (g *Gate) MutateUnchecked(ctx context.Context, path, publishMessage string, mutate func() error) (*Outcome, error) {
	ctx, span := telemetry.Start(ctx, "editor.MutateUnchecked")
	defer span.End()

	root, inTree := g.locate(path)
	if err := mutate(); err != nil {
		return nil, err
	}
	outcome := &Outcome{Edited: true}
	if !inTree {
		return outcome, nil
	}

	report, err := g.pub.Publish(ctx, root, publishMessage)
	if err != nil {
		outcome.PublishNote = err.Error()
		otelzap.Ctx(ctx).Warn("Publish after edit failed",
			zap.String("path", path), zap.Error(err))
		return outcome, nil
	}
	outcome.Published = report.Pushed
	outcome.NothingToCommit = report.NothingToCommit
	outcome.Branch = report.Branch
	return outcome, nil
}

// BlockedMessage formats the refusal message for a blocked mutation: every
// warning, then every suggestion, then the retry hint.
func BlockedMessage(v *vcs.SyncVerdict) string {
	var sb strings.Builder
	sb.WriteString("⚠️ Sync check failed. Please resolve sync issues before editing:\n\n")
	for _, warning := range v.Warnings {
		sb.WriteString("  • " + warning + "\n")
	}
	sb.WriteString("\nSuggestions:\n")
	for _, suggestion := range v.Suggestions {
		sb.WriteString("  • " + suggestion + "\n")
	}
	sb.WriteString("\nAfter resolving sync issues, you can retry the edit operation.")
	return sb.String()
}
