package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"folio/internal/assets"
	"folio/internal/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkImages bool

// projectsCmd prints the project catalog
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects in the catalog",
	Long: `Prints every project in catalog order with its tags and links.

With --check-images each image is resolved the way the page resolves it;
unavailable images are shown with their placeholder.`,
	Args: cobra.NoArgs,
	RunE: listProjects,
}

func init() {
	projectsCmd.Flags().BoolVar(&checkImages, "check-images", true, "Resolve images, substituting placeholders")
}

func listProjects(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", zap.String("source", cat.Source()), zap.Int("projects", cat.Len()))

	projects := cat.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects yet.")
		return nil
	}

	var images map[int]assets.Resolved
	if checkImages {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		images = assets.NewResolver(assetDir(), logger.Named("assets")).ResolveAll(ctx, projects)
	}

	for i, p := range projects {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%d. %s\n", p.ID, p.Title)
		if p.Description != "" {
			fmt.Printf("   %s\n", p.Description)
		}
		if len(p.Tags) > 0 {
			fmt.Printf("   Tags:      %s\n", strings.Join(p.Tags, ", "))
		}
		if p.HasGitHub() {
			fmt.Printf("   GitHub:    %s\n", p.GitHubLink)
		}
		if p.HasLive() {
			fmt.Printf("   Live Demo: %s\n", p.LiveLink)
		}
		if r, ok := images[p.ID]; ok {
			suffix := ""
			if r.Fallback {
				suffix = " (placeholder)"
			}
			fmt.Printf("   Image:     %s%s\n", r.URL, suffix)
		} else if p.Image != "" {
			fmt.Printf("   Image:     %s\n", p.Image)
		}
	}
	return nil
}
