package config

// LoggingConfig controls both the CLI logger and the file the interactive
// page writes to while it owns the terminal.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level,omitempty"`
	Format string `yaml:"format" json:"format,omitempty"` // json or console
	File   string `yaml:"file" json:"file,omitempty"`

	// DebugMode turns the interactive log file on. Without it the page
	// logs nothing.
	DebugMode bool `yaml:"debug_mode" json:"debug_mode,omitempty"`

	// Categories silences individual page subsystems (reveal, contact,
	// catalog...) when set to false.
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"`
}

// IsCategoryEnabled reports whether the page's category logger writes to
// the log file. A category missing from Categories follows DebugMode.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	on, listed := c.Categories[category]
	return c.DebugMode && (on || !listed)
}
