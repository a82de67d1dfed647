package export

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Boredoom17/portfolio/internal/site"
)

func TestRun(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "front.jpg"), []byte("jpeg"), 0o644))
	s, err := site.New(site.Options{PublicDir: public})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.html"), []byte("old"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Run(s, Options{OutDir: out, PublicDir: public, Logger: logger}))

	for _, name := range []string{
		"index.html",
		"projects/index.html",
		"about/index.html",
		"contact/index.html",
		"static/reveal.js",
		"static/site.css",
		"front.jpg",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(name)))
	}
	assert.NoFileExists(t, filepath.Join(out, "stale.html"))

	f, err := os.Open(filepath.Join(out, "projects", "index.html"))
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Find("article.project-card").Length())
}

func TestRunRequiresOutDir(t *testing.T) {
	s, err := site.New(site.Options{})
	require.NoError(t, err)
	assert.Error(t, Run(s, Options{}))
}

func TestRunRefusesUnsafeOutDir(t *testing.T) {
	parent := t.TempDir()
	public := filepath.Join(parent, "public")
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "front.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "keep.txt"), []byte("keep"), 0o644))
	s, err := site.New(site.Options{PublicDir: public})
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name string
		out  string
	}{
		{name: "same as public", out: public},
		{name: "contains public", out: parent},
		{name: "inside public", out: filepath.Join(public, "dist")},
		{name: "dot", out: "."},
		{name: "working directory", out: cwd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(s, Options{OutDir: tt.out, PublicDir: public})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsafeOutDir))

			assert.FileExists(t, filepath.Join(public, "front.jpg"))
			assert.FileExists(t, filepath.Join(public, "keep.txt"))
			assert.FileExists(t, filepath.Join(cwd, "export_test.go"))
		})
	}
}
