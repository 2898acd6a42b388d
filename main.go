// main.go

package main

import (
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/cmd"
	"github.com/latexops/overleaf-mcp/pkg/logger"
	"github.com/latexops/overleaf-mcp/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	if err := telemetry.Init("overleaf-mcp"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	cmd.Execute()
}
