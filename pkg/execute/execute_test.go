// pkg/execute/execute_test.go

package execute

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureSuccess(t *testing.T) {
	result, err := Capture(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo hello; echo oops >&2"},
	})
	require.NoError(t, err)

	assert.True(t, result.Ok())
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestCaptureNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Capture(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo nope >&2; exit 3"},
	})
	require.NoError(t, err)

	assert.False(t, result.Ok())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "nope\n", result.Stderr)
}

func TestCaptureTimeout(t *testing.T) {
	start := time.Now()
	_, err := Capture(context.Background(), Options{
		Command: "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})
	require.Error(t, err)

	assert.True(t, cerr.Is(err, ErrTimedOut))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCaptureCommandNotFound(t *testing.T) {
	_, err := Capture(context.Background(), Options{
		Command: "definitely-not-a-real-binary-2c9f",
	})
	require.Error(t, err)
	assert.False(t, cerr.Is(err, ErrTimedOut))
}

func TestCaptureRespectsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	real, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	result, err := Capture(context.Background(), Options{
		Command: "pwd",
		Dir:     dir,
	})
	require.NoError(t, err)
	assert.Equal(t, real, strings.TrimSpace(result.Stdout))
}

func TestRunWrapsNonZeroExit(t *testing.T) {
	out, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", "echo partial; echo bad >&2; exit 2"},
	})
	require.Error(t, err)
	assert.Equal(t, "partial\n", out)
	assert.Contains(t, err.Error(), "exited with status 2")
	assert.Contains(t, err.Error(), "bad")
}
