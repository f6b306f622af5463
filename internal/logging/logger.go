// Package logging builds the zap loggers used by folio.
//
// Interactive sessions own the terminal, so their logs go to a file and only
// when debug_mode is on; categories can be switched off one by one. CLI
// subcommands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"folio/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and shutdown
	CategoryReveal  Category = "reveal"  // Section reveal timers
	CategoryContact Category = "contact" // Contact form lifecycle and transports
	CategoryCatalog Category = "catalog" // Catalog loading and reloads
	CategoryAssets  Category = "assets"  // Image resolution
	CategoryUI      Category = "ui"      // Page model and navigation
)

// Logger hands out per-category zap loggers sharing one core.
type Logger struct {
	mu     sync.Mutex
	base   *zap.Logger
	cfg    config.LoggingConfig
	cache  map[Category]*zap.Logger
	closer func() error
}

// parseLevel maps the configured level name, defaulting to info.
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// NewCLI returns a production zap logger writing to stderr. verbose forces
// debug level.
func NewCLI(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewInteractive returns the file-backed logger for the TUI. With debug mode
// off it is a silent no-op and creates no files. A relative cfg.File is placed
// under dir.
func NewInteractive(cfg config.LoggingConfig, dir string) (*Logger, error) {
	l := &Logger{
		base:  zap.NewNop(),
		cfg:   cfg,
		cache: make(map[Category]*zap.Logger),
	}
	if !cfg.DebugMode {
		return l, nil // Silent no-op in production mode
	}

	path := cfg.File
	if path == "" {
		path = "folio.log"
	}
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), parseLevel(cfg.Level))
	l.base = zap.New(core)
	l.closer = file.Close
	l.base.Info("logging initialized", zap.String("file", path), zap.String("level", parseLevel(cfg.Level).String()))
	return l, nil
}

// Get returns the logger for a category, or a no-op logger when the
// category is disabled.
func (l *Logger) Get(category Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[category]; ok {
		return cached
	}
	var out *zap.Logger
	if l.cfg.IsCategoryEnabled(string(category)) {
		out = l.base.Named(string(category))
	} else {
		out = zap.NewNop()
	}
	l.cache[category] = out
	return out
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.base.Sync()
	if l.closer == nil {
		return nil
	}
	err := l.closer()
	l.closer = nil
	return err
}
