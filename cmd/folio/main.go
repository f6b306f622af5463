// Package main provides the folio CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/reveal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose     bool
	configPath  string
	catalogPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a personal portfolio for the terminal",
	Long: `folio renders a personal portfolio in the terminal: a hero banner, an
about panel, a project gallery and a contact form.

Run without arguments to open the interactive page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return prepare(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive page
		return runInteractive(cmd.Context())
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Project catalog YAML (overrides catalog.path)")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies the --catalog flag and validates
// the result.
// prepare loads the config and CLI logger for cmd. config init skips the
// load so it can replace a file that no longer parses or validates.
func prepare(cmd *cobra.Command) error {
	var err error
	if cmd == configInitCmd {
		cfg = config.DefaultConfig()
	} else if cfg, err = loadConfig(); err != nil {
		return err
	}

	// The interactive page owns the terminal and logs to a file instead
	if cmd == cmd.Root() {
		return nil
	}

	logger, err = logging.NewCLI(cfg.Logging, verbose)
	return err
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		c.Catalog.Path = catalogPath
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// configDir is where relative paths in the config resolve.
func configDir() string {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return filepath.Dir(path)
}

// revealSpecs lists the page sections in order with their configured delays.
func revealSpecs(c *config.Config) []reveal.Spec {
	delays := c.Reveal.Delays()
	order := []string{reveal.Hero, reveal.About, reveal.Projects, reveal.Contact}
	specs := make([]reveal.Spec, 0, len(order))
	for _, id := range order {
		specs = append(specs, reveal.Spec{ID: id, Delay: delays[id]})
	}
	return specs
}
