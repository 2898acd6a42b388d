// pkg/logger/logger.go

package logger

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Console output goes to stderr, never stdout: when the MCP server runs on
// the stdio transport, stdout carries the JSON-RPC stream.

// ParseLogLevel maps a LOG_LEVEL env value to a zap level.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// LogFilePaths returns candidate log file locations in priority order.
func LogFilePaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".overleaf-mcp", "overleaf-mcp.log"))
	}
	paths = append(paths, filepath.Join(os.TempDir(), "overleaf-mcp", "overleaf-mcp.log"))
	return paths
}

// findWritableLogPath returns the first log path whose directory can be created
// and whose file can be opened for append.
func findWritableLogPath() (string, bool) {
	for _, path := range LogFilePaths() {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			continue
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			continue
		}
		file.Close()
		return path, true
	}
	return "", false
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// NewFallbackLogger builds a console-only logger for when no log file is writable.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		ParseLogLevel(os.Getenv("LOG_LEVEL")),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback sets up the global logger: console on stderr plus a
// JSON log file when one is writable, console only otherwise.
func InitializeWithFallback() {
	level := ParseLogLevel(os.Getenv("LOG_LEVEL"))

	path, ok := findWritableLogPath()
	if !ok {
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		return
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(file), level),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(log)
	log.Debug("Logger initialized", zap.String("log_path", path))
}

// L returns the global logger, initializing it if needed.
func L() *zap.Logger {
	if log == nil {
		InitializeWithFallback()
	}
	return log
}

// GenerateTraceID returns a short 8-char id for correlating a tool invocation
// across log lines.
func GenerateTraceID() string {
	return uuid.New().String()[:8]
}

// Sync flushes buffered log entries. Call before the process exits.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
