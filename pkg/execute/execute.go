// pkg/execute/execute.go

// Package execute runs external commands with bounded timeouts and captured
// output. A non-zero exit is a normal, inspectable result, not an error; only
// failures to run the command at all (missing binary, timeout) surface as
// errors. Retry policy belongs to callers that know the semantics of the
// specific command.
package execute

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
)

// ErrTimedOut reports that a command was abandoned at its deadline. It is a
// distinct failure kind, never conflated with a non-zero exit.
var ErrTimedOut = cerr.New("command timed out")

// Options describes a single command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string        // working directory; empty means inherit
	Timeout time.Duration // zero means DefaultTimeout
}

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Result carries everything a caller needs to interpret a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports a zero exit status.
func (r *Result) Ok() bool {
	return r.ExitCode == 0
}

// Capture runs the command and returns its exit code and captured output.
// Shell interpretation is never used; arguments are passed verbatim.
func Capture(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runCtx, span := telemetry.Start(runCtx, "execute.Capture",
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)
	defer span.End()

	logger := otelzap.Ctx(runCtx)
	logger.Debug("Running command",
		zap.String("command", opts.Command),
		zap.Strings("args", opts.Args),
		zap.String("dir", opts.Dir),
		zap.Duration("timeout", timeout))

	cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	// ProcessState is nil when the command never started.
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			span.RecordError(ErrTimedOut)
			logger.Warn("Command timed out",
				zap.String("command", opts.Command),
				zap.Duration("timeout", timeout))
			return nil, cerr.Wrapf(ErrTimedOut, "%s after %s", opts.Command, timeout)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The command never ran (not found, permission denied, ...).
			span.RecordError(err)
			return nil, cerr.Wrapf(err, "run %s", opts.Command)
		}
		// Non-zero exit: normal result, the caller decides what it means.
	}

	logger.Debug("Command finished",
		zap.String("command", opts.Command),
		zap.Int("exit_code", result.ExitCode))
	return result, nil
}

// Run executes a command and returns stdout, treating a non-zero exit as an
// error. Convenience for callers that only care about success.
func Run(ctx context.Context, opts Options) (string, error) {
	result, err := Capture(ctx, opts)
	if err != nil {
		return "", err
	}
	if !result.Ok() {
		return result.Stdout, cerr.Newf("%s exited with status %d: %s",
			opts.Command, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return result.Stdout, nil
}
