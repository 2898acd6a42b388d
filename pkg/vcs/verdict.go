// pkg/vcs/verdict.go

package vcs

import "fmt"

// SyncVerdict is the divergence summary for one working tree, computed fresh
// on every evaluation. Warnings and Suggestions are always equal in length
// and positionally paired, and IsSynced is true exactly when Warnings is
// empty.
type SyncVerdict struct {
	HasUncommittedChanges bool
	LocalCommitsAhead     int
	RemoteCommitsAhead    int

	// RemoteStateKnown is false when the ahead/behind counts could not be
	// computed for any default-branch candidate. An unknown remote state is
	// never reported as "synced".
	RemoteStateKnown bool

	IsSynced    bool
	Warnings    []string
	Suggestions []string
}

// LocalAhead reports local commits the remote does not have.
func (v *SyncVerdict) LocalAhead() bool {
	return v.LocalCommitsAhead > 0
}

// RemoteAhead reports remote commits the local tree does not have.
func (v *SyncVerdict) RemoteAhead() bool {
	return v.RemoteCommitsAhead > 0
}

// Summary is the human-readable one-liner for the verdict.
func (v *SyncVerdict) Summary() string {
	if v.IsSynced {
		return "Project is fully synchronized with Overleaf cloud"
	}
	return fmt.Sprintf("Project has unsynchronized changes: %d issue(s) found", len(v.Warnings))
}

const (
	warnUncommitted    = "You have uncommitted local changes"
	suggestUncommitted = "Commit your changes before syncing"

	warnRemoteUnknown    = "Unable to determine the state of the remote branch"
	suggestRemoteUnknown = "Verify the Overleaf remote is reachable and the default branch exists"
)

func warnRemoteAhead(n int) string {
	return fmt.Sprintf("Overleaf cloud has %d commit(s) that are not in your local project", n)
}

const suggestRemoteAhead = "Run pull_overleaf_project to sync changes from Overleaf cloud"

func warnLocalAhead(n int) string {
	return fmt.Sprintf("Your local project has %d commit(s) that are not on Overleaf cloud", n)
}

const suggestLocalAhead = "Run push_to_overleaf to sync your local changes to Overleaf cloud"

// finalize derives IsSynced and appends the warning/suggestion pairs in the
// fixed order: uncommitted, remote-ahead, local-ahead, remote-unknown. The
// order is deterministic for a given combination of conditions.
func (v *SyncVerdict) finalize() {
	if v.HasUncommittedChanges {
		v.Warnings = append(v.Warnings, warnUncommitted)
		v.Suggestions = append(v.Suggestions, suggestUncommitted)
	}
	if v.RemoteAhead() {
		v.Warnings = append(v.Warnings, warnRemoteAhead(v.RemoteCommitsAhead))
		v.Suggestions = append(v.Suggestions, suggestRemoteAhead)
	}
	if v.LocalAhead() {
		v.Warnings = append(v.Warnings, warnLocalAhead(v.LocalCommitsAhead))
		v.Suggestions = append(v.Suggestions, suggestLocalAhead)
	}
	if !v.RemoteStateKnown {
		v.Warnings = append(v.Warnings, warnRemoteUnknown)
		v.Suggestions = append(v.Suggestions, suggestRemoteUnknown)
	}
	v.IsSynced = len(v.Warnings) == 0
}
