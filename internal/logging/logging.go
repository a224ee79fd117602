// Package logging tees the process logger into an optional JSON log file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OpenFile opens path for appending, creating parent directories.
// An empty path returns a nil file and no error.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// AttachFile returns base with an extra JSON core writing to file.
func AttachFile(base *zap.Logger, file *os.File, debug bool) *zap.Logger {
	if file == nil {
		return base
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(file), level)
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
}
