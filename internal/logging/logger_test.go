package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/config"

	"go.uber.org/zap/zapcore"
)

// TestAllCategoriesLog checks that every category writes when debug_mode is on.
func TestAllCategoriesLog(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggingConfig{Level: "debug", DebugMode: true, File: "logs/folio.log"}

	l, err := NewInteractive(cfg, dir)
	if err != nil {
		t.Fatalf("NewInteractive failed: %v", err)
	}

	categories := []Category{CategoryBoot, CategoryReveal, CategoryContact, CategoryCatalog, CategoryAssets, CategoryUI}
	for _, cat := range categories {
		l.Get(cat).Info("hello from " + string(cat))
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "logs", "folio.log"))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	for _, cat := range categories {
		if !strings.Contains(string(data), `"logger":"`+string(cat)+`"`) {
			t.Errorf("expected entry for category %s", cat)
		}
	}
}

func TestProductionModeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	l, err := NewInteractive(config.LoggingConfig{Level: "debug", File: "folio.log"}, dir)
	if err != nil {
		t.Fatalf("NewInteractive failed: %v", err)
	}
	l.Get(CategoryBoot).Info("should be dropped")
	_ = l.Close()

	if _, err := os.Stat(filepath.Join(dir, "folio.log")); !os.IsNotExist(err) {
		t.Errorf("expected no log file in production mode, stat err=%v", err)
	}
}

func TestDisabledCategory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggingConfig{
		Level:      "info",
		DebugMode:  true,
		Categories: map[string]bool{"reveal": false},
	}
	l, err := NewInteractive(cfg, dir)
	if err != nil {
		t.Fatalf("NewInteractive failed: %v", err)
	}
	l.Get(CategoryReveal).Info("muted")
	l.Get(CategoryContact).Info("kept")
	if l.Get(CategoryContact) != l.Get(CategoryContact) {
		t.Error("category loggers should be cached")
	}
	_ = l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "folio.log"))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if strings.Contains(string(data), "muted") {
		t.Error("disabled category wrote to the log")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("enabled category did not write")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Get(CategoryUI).Info("nothing")
	if err := l.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("WARN").String() != "warn" {
		t.Error("expected warn")
	}
	if parseLevel("bogus").String() != "info" {
		t.Error("expected info fallback")
	}
}

func TestNewCLI(t *testing.T) {
	logger, err := NewCLI(config.LoggingConfig{Level: "error"}, true)
	if err != nil {
		t.Fatalf("NewCLI failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug level")
	}
}
