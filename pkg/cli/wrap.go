// pkg/cli/wrap.go

// Package cli wraps cobra command handlers with runtime context, panic
// recovery, and lifecycle logging.
package cli

import (
	"context"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/logger"
)

// RuntimeContext carries the per-invocation context and logger into wrapped
// command handlers.
type RuntimeContext struct {
	Ctx       context.Context
	Log       *zap.Logger
	Timestamp time.Time
}

// Wrap adapts a handler taking a RuntimeContext into a cobra RunE, adding
// panic recovery and start/finish logging.
func Wrap(fn func(rc *RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		start := time.Now()
		log := logger.L().Named(cmd.Name())

		rc := &RuntimeContext{
			Ctx:       cmd.Context(),
			Log:       log,
			Timestamp: start,
		}
		if rc.Ctx == nil {
			rc.Ctx = context.Background()
		}

		log.Debug("Command started", zap.Time("timestamp", start))

		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered", zap.Any("panic", r))
				err = cerr.Newf("panic: %v", r)
			}
			duration := time.Since(start)
			if err != nil {
				log.Error("Command failed", zap.Error(err), zap.Duration("duration", duration))
			} else {
				log.Debug("Command finished", zap.Duration("duration", duration))
			}
		}()

		err = fn(rc, cmd, args)
		return err
	}
}
