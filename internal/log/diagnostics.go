package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDiagnostics returns the debug logger. The terminal belongs to the
// experiment screen, so output goes to .triplet/debug.log under dir. When
// debug is false a no-op logger is returned.
func NewDiagnostics(dir string, debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	logDir := filepath.Join(dir, ".triplet")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create .triplet directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{filepath.Join(logDir, "debug.log")}
	config.ErrorOutputPaths = []string{filepath.Join(logDir, "debug.log")}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build diagnostics logger: %w", err)
	}
	return logger, nil
}
