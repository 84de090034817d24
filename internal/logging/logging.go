// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultPath is where the TUI logs when no path is configured. The terminal
// belongs to the dashboard, so logs never go to stderr there.
const DefaultPath = "cocoverse.log"

// Settings selects the log destination and level
type Settings struct {
	Path  string // file path, "stderr" or "stdout"
	Level string // debug, info, warn, error
}

// New builds a production logger writing JSON lines to the configured path
func New(s Settings) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	if s.Level != "" {
		level, err := zap.ParseAtomicLevel(s.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", s.Level, err)
		}
		cfg.Level = level
	}

	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	if path != "stderr" && path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
