// Package assets resolves image references for display, substituting a
// generated placeholder when an image cannot be loaded.
package assets

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/catalog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resolved is the outcome of resolving one image reference.
type Resolved struct {
	Ref      string
	URL      string
	Fallback bool
}

// Resolver checks that image references are loadable.
type Resolver struct {
	BaseDir     string // local refs are resolved against this directory
	Client      *http.Client
	Logger      *zap.Logger
	Concurrency int
}

// NewResolver returns a Resolver for refs relative to baseDir.
func NewResolver(baseDir string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		BaseDir:     baseDir,
		Client:      &http.Client{Timeout: 5 * time.Second},
		Logger:      logger,
		Concurrency: 4,
	}
}

// Resolve returns a displayable location for ref. On any failure the result
// points at the placeholder for title; the failure itself is only logged.
func (r *Resolver) Resolve(ctx context.Context, ref, title string) Resolved {
	url, err := r.check(ctx, ref)
	if err != nil {
		r.Logger.Debug("image unavailable, using placeholder",
			zap.String("ref", ref),
			zap.String("title", title),
			zap.Error(err))
		return Resolved{Ref: ref, URL: catalog.PlaceholderURL(title), Fallback: true}
	}
	return Resolved{Ref: ref, URL: url}
}

// ResolveAll resolves every project image concurrently. Results are keyed by
// project id.
func (r *Resolver) ResolveAll(ctx context.Context, projects []catalog.Project) map[int]Resolved {
	results := make([]Resolved, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			results[i] = r.Resolve(gctx, p.Image, p.Title)
			return nil
		})
	}
	_ = g.Wait() // Resolve never fails; failures become placeholders.

	out := make(map[int]Resolved, len(projects))
	for i, p := range projects {
		out[p.ID] = results[i]
	}
	return out
}

func (r *Resolver) check(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty image reference")
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, r.head(ctx, ref)
	}

	path := strings.TrimPrefix(ref, "file://")
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}

func (r *Resolver) head(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image request returned %s", resp.Status)
	}
	return nil
}
