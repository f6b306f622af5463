package main

import (
	"context"
	"fmt"
	"path/filepath"

	"folio/cmd/folio/page"
	"folio/cmd/folio/ui"
	"folio/internal/assets"
	"folio/internal/catalog"
	"folio/internal/clock"
	"folio/internal/contact/transport"
	"folio/internal/logging"
	"folio/internal/reveal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// runInteractive opens the portfolio page in the alternate screen.
func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// One-time, process-wide; later calls are no-ops
	if cfg.UI.SmoothScroll {
		ui.ConfigureScroll(ui.ScrollSmooth)
	} else {
		ui.ConfigureScroll(ui.ScrollInstant)
	}

	logs, err := logging.NewInteractive(cfg.Logging, configDir())
	if err != nil {
		return err
	}
	defer logs.Close()
	boot := logs.Get(logging.CategoryBoot)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	boot.Info("catalog loaded", zap.String("source", cat.Source()), zap.Int("projects", cat.Len()))

	sched, err := reveal.NewScheduler(revealSpecs(cfg), reveal.WithLogger(logs.Get(logging.CategoryReveal)))
	if err != nil {
		return err
	}

	sender, err := transport.New(cfg.Contact, logs.Get(logging.CategoryContact), clock.Real())
	if err != nil {
		return err
	}

	opts := page.Options{
		Config:    cfg,
		Catalog:   cat,
		Scheduler: sched,
		Sender:    sender,
		Resolver:  assets.NewResolver(assetDir(), logs.Get(logging.CategoryAssets)),
		Logger:    logs.Get(logging.CategoryUI),
	}
	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		w, err := catalog.NewWatcher(cfg.Catalog.Path, logs.Get(logging.CategoryCatalog))
		if err != nil {
			boot.Warn("catalog watch disabled", zap.Error(err))
		} else {
			opts.Watcher = w
		}
	}

	m, err := page.New(opts)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.MouseWheel {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	boot.Info("starting page", zap.String("transport", cfg.Contact.Transport))
	final, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := final.(page.Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("page exited: %w", err)
	}
	return nil
}

// assetDir is the directory local image refs resolve against: the catalog's
// directory when one is configured, else the working directory.
func assetDir() string {
	if cfg.Catalog.Path != "" {
		return filepath.Dir(cfg.Catalog.Path)
	}
	return "."
}
