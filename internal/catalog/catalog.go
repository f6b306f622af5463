// Package catalog holds the read-only list of portfolio projects.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Placeholder image endpoints used when an image cannot be loaded.
const (
	placeholderBase       = "https://placehold.co/600x400/F5F5F5/333333?text="
	ProfilePlaceholderURL = "https://placehold.co/160x160/FFFFFF/333333?text=Profile"
)

// Project is one portfolio entry.
type Project struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Tags        []string `yaml:"tags" json:"tags"`
	GitHubLink  string   `yaml:"github,omitempty" json:"github,omitempty"`
	LiveLink    string   `yaml:"live,omitempty" json:"live,omitempty"`
}

// HasGitHub reports whether the project links to its source.
func (p Project) HasGitHub() bool { return p.GitHubLink != "" }

// HasLive reports whether the project links to a live demo.
func (p Project) HasLive() bool { return p.LiveLink != "" }

// Placeholder returns the fallback image URL for the project.
func (p Project) Placeholder() string { return PlaceholderURL(p.Title) }

// PlaceholderURL returns a generated image URL whose text is title with every
// whitespace character replaced by '+'.
func PlaceholderURL(title string) string {
	return placeholderBase + strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '+'
		}
		return r
	}, title)
}

// Catalog is an ordered, immutable list of projects.
type Catalog struct {
	projects []Project
	source   string
}

type document struct {
	Projects []Project `yaml:"projects"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	c.source = "built-in"
	return c
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := &Catalog{projects: doc.Projects}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a YAML catalog from path. An empty path yields the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// Validate checks only what rendering needs: a title per project and unique
// ids. Optional links are rendered when present and never validated.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[int]bool, len(c.projects))
	for i, p := range c.projects {
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("project #%d: title is required", i+1))
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("project #%d: duplicate id %d", i+1, p.ID))
		}
		seen[p.ID] = true
	}
	return errors.Join(errs...)
}

// Projects returns a copy of the projects in catalog order.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	for i, p := range c.projects {
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }
