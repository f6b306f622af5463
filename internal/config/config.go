package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all folio configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Who the portfolio is about
	Profile ProfileConfig `yaml:"profile"`

	// Section reveal stagger
	Reveal RevealConfig `yaml:"reveal"`

	// Contact form delivery
	Contact ContactConfig `yaml:"contact"`

	// Project catalog source
	Catalog CatalogConfig `yaml:"catalog"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProfileConfig describes the portfolio owner.
type ProfileConfig struct {
	Name     string   `yaml:"name"`
	Brand    string   `yaml:"brand"`
	Role     string   `yaml:"role"`
	Headline string   `yaml:"headline"`
	Image    string   `yaml:"image"`
	About    string   `yaml:"about"` // markdown
	Skills   []string `yaml:"skills"`
	Email    string   `yaml:"email"`
	Socials  []Social `yaml:"socials"`
}

// Social is one footer/contact link.
type Social struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// CatalogConfig points at the project catalog.
type CatalogConfig struct {
	Path  string `yaml:"path"` // empty = built-in catalog
	Watch bool   `yaml:"watch"`
}

const defaultAbout = `Hello! I'm **Aaditya Kumar Jha**, a dedicated software developer with a passion for creating
robust and scalable web applications. My journey in tech began with a fascination for how
digital solutions can solve real-world problems.

I specialize in front-end development using **React.js**, building intuitive and dynamic user
interfaces. I also have experience with back-end technologies like Node.js and various databases,
allowing me to work across the full stack.

When I'm not coding, you can find me exploring new technologies, contributing to open-source
projects, or enjoying outdoor activities. I'm always eager to learn and take on new challenges!`

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "folio",
		Version: "1.0.0",

		Profile: ProfileConfig{
			Name:     "Aaditya Kumar Jha",
			Brand:    "AadityaJha",
			Role:     "Software Developer",
			Headline: "A passionate Software Developer focused on building innovative and user-friendly web applications.",
			Image:    "assets/profile.jpg",
			About:    defaultAbout,
			Skills: []string{
				"React", "JavaScript", "TypeScript", "Node.js", "Express.js", "MongoDB",
				"PostgreSQL", "Tailwind CSS", "Next.js", "Git", "REST APIs", "GraphQL",
			},
			Email: "ajha63002@gmail.com",
			Socials: []Social{
				{Label: "github.com/itz-aaditya", URL: "https://github.com/itz-aaditya"},
				{Label: "linkedin.com/in/aaditya-kumar-jha", URL: "https://www.linkedin.com/in/aaditya-kumar-jha-71a0852b4/"},
			},
		},

		Reveal: DefaultRevealConfig(),

		Contact: ContactConfig{
			Transport:      "simulated",
			Timeout:        "10s",
			SimulatedDelay: "1500ms",
		},

		Catalog: CatalogConfig{
			Watch: true,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level: "info",
			File:  "folio.log",
		},
	}
}

// DefaultConfigPath returns ~/.config/folio/config.yaml, or config.yaml in
// the working directory when the home directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "folio", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if t := os.Getenv("FOLIO_TRANSPORT"); t != "" {
		c.Contact.Transport = t
	}
	if u := os.Getenv("FOLIO_WEBHOOK_URL"); u != "" {
		c.Contact.WebhookURL = u
		if os.Getenv("FOLIO_TRANSPORT") == "" {
			c.Contact.Transport = "webhook"
		}
	}
	if path := os.Getenv("FOLIO_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if os.Getenv("FOLIO_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Reveal.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Contact.Transport) {
	case "", "simulated", "log":
	case "webhook":
		if c.Contact.WebhookURL == "" {
			errs = append(errs, errors.New("contact.webhook_url is required for the webhook transport (set FOLIO_WEBHOOK_URL)"))
		} else if u, err := url.Parse(c.Contact.WebhookURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("contact.webhook_url must be an http(s) URL: %q", c.Contact.WebhookURL))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid contact transport: %s (valid: %v)", c.Contact.Transport, ValidTransports))
	}

	if c.Contact.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("contact.rate_limit.burst must not be negative"))
	}

	return errors.Join(errs...)
}
