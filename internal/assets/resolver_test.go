package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_LocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "deadline.png"), []byte("png"), 0644))

	r := NewResolver(dir, nil)
	got := r.Resolve(context.Background(), "assets/deadline.png", "Chatting App")

	assert.False(t, got.Fallback)
	assert.Equal(t, filepath.Join(dir, "assets", "deadline.png"), got.URL)
}

func TestResolve_MissingLocalFileFallsBack(t *testing.T) {
	r := NewResolver(t.TempDir(), nil)
	got := r.Resolve(context.Background(), "assets/assist.png", "Appointment Scheduling Web App")

	assert.True(t, got.Fallback)
	assert.Equal(t, "https://placehold.co/600x400/F5F5F5/333333?text=Appointment+Scheduling+Web+App", got.URL)
	assert.Equal(t, "assets/assist.png", got.Ref)
}

func TestResolve_EmptyRefFallsBack(t *testing.T) {
	r := NewResolver("", nil)
	got := r.Resolve(context.Background(), "  ", "Blank")
	assert.True(t, got.Fallback)
	assert.Equal(t, catalog.PlaceholderURL("Blank"), got.URL)
}

func TestResolve_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/ok.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewResolver("", nil)

	ok := r.Resolve(context.Background(), srv.URL+"/ok.png", "Fine")
	assert.False(t, ok.Fallback)
	assert.Equal(t, srv.URL+"/ok.png", ok.URL)

	missing := r.Resolve(context.Background(), srv.URL+"/gone.png", "Gone Project")
	assert.True(t, missing.Fallback)
	assert.Equal(t, catalog.PlaceholderURL("Gone Project"), missing.URL)
}

func TestResolveAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0644))

	projects := []catalog.Project{
		{ID: 1, Title: "Has Image", Image: "a.png"},
		{ID: 2, Title: "No Image", Image: "b.png"},
		{ID: 3, Title: "Nothing"},
	}
	r := NewResolver(dir, nil)
	r.Concurrency = 2
	got := r.ResolveAll(context.Background(), projects)

	require.Len(t, got, 3)
	assert.False(t, got[1].Fallback)
	assert.True(t, got[2].Fallback)
	assert.Equal(t, "https://placehold.co/600x400/F5F5F5/333333?text=No+Image", got[2].URL)
	assert.True(t, got[3].Fallback)
}
