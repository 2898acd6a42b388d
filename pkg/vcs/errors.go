// pkg/vcs/errors.go

package vcs

import (
	cerr "github.com/cockroachdb/errors"
)

var (
	// ErrNotAWorkingTree reports that a path is not the root of a git
	// working tree.
	ErrNotAWorkingTree = cerr.New("not a git repository")

	// ErrCommandFailed reports a git command that exited non-zero where
	// success was required. The wrapped message carries the diagnostic text.
	ErrCommandFailed = cerr.New("git command failed")
)
