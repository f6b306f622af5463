package config

import (
	"fmt"
	"time"
)

// RevealConfig holds the per-section reveal delays.
type RevealConfig struct {
	Hero     string `yaml:"hero"`
	About    string `yaml:"about"`
	Projects string `yaml:"projects"`
	Contact  string `yaml:"contact"`
}

// DefaultRevealConfig staggers sections 200ms apart.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		Hero:     "0s",
		About:    "200ms",
		Projects: "400ms",
		Contact:  "600ms",
	}
}

// Delays returns the parsed delays keyed by section id. Empty or unparsable
// values fall back to 0.
func (r RevealConfig) Delays() map[string]time.Duration {
	return map[string]time.Duration{
		"hero":     parseDelay(r.Hero),
		"about":    parseDelay(r.About),
		"projects": parseDelay(r.Projects),
		"contact":  parseDelay(r.Contact),
	}
}

// Validate rejects malformed or negative delays.
func (r RevealConfig) Validate() error {
	for name, raw := range map[string]string{
		"hero": r.Hero, "about": r.About, "projects": r.Projects, "contact": r.Contact,
	} {
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("reveal.%s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("reveal.%s: delay must not be negative, got %s", name, raw)
		}
	}
	return nil
}

func parseDelay(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
