package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/mindchord/internal/config"
	"github.com/dshills/mindchord/internal/logging"
)

// openLog builds the application logger. The terminal belongs to the UI,
// so logs go to cfg.File or nowhere.
func openLog(cfg config.LogConfig) (*logging.Logger, io.Closer, error) {
	if cfg.File == "" {
		return logging.Nop(), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := logging.New(logging.Config{
		Level:  cfg.Level,
		Output: f,
		Prefix: config.AppName,
	})
	return l, f, nil
}
