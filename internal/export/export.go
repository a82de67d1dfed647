// Package export writes the site as static files for hosting without the
// server binary.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Boredoom17/portfolio/internal/route"
	"github.com/Boredoom17/portfolio/internal/site"
)

// Options configures an export.
type Options struct {
	OutDir    string
	PublicDir string
	Logger    *slog.Logger
}

// Run renders every route to <OutDir>/<path>/index.html and copies the
// embedded assets to <OutDir>/static and the public dir to <OutDir>.
func Run(s *site.Site, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutDir == "" {
		return fmt.Errorf("export: output directory must be set")
	}
	if err := checkOutDir(opts.OutDir, opts.PublicDir); err != nil {
		return err
	}

	// Render before cleaning so the avatar state reflects the public dir as it is.
	pages := make([][]byte, 0, len(route.All()))
	for _, rt := range route.All() {
		var buf bytes.Buffer
		if err := s.Render(&buf, s.Page(rt, site.RenderOptions{})); err != nil {
			return err
		}
		pages = append(pages, buf.Bytes())
	}

	if err := os.RemoveAll(opts.OutDir); err != nil {
		return fmt.Errorf("clean output directory %s: %w", opts.OutDir, err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", opts.OutDir, err)
	}

	for i, rt := range route.All() {
		dst := filepath.Join(opts.OutDir, filepath.FromSlash(rt.Path()), "index.html")
		if err := writeFile(dst, pages[i]); err != nil {
			return err
		}
		logger.Info("exported page", "route", rt.String(), "file", dst)
	}

	if err := copyFS(site.Static(), filepath.Join(opts.OutDir, "static")); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	if opts.PublicDir != "" {
		if _, err := os.Stat(opts.PublicDir); err == nil {
			if err := copyFS(os.DirFS(opts.PublicDir), opts.OutDir); err != nil {
				return fmt.Errorf("copy public dir: %w", err)
			}
		} else {
			logger.Warn("public directory not found, skipping", "dir", opts.PublicDir)
		}
	}
	return nil
}

// ErrUnsafeOutDir is returned when the output directory would wipe the working
// directory, the filesystem root or the public directory.
var ErrUnsafeOutDir = errors.New("unsafe output directory")

func checkOutDir(outDir, publicDir string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output directory %s: %w", outDir, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	if filepath.Clean(outDir) == "." || out == cwd || within(out, cwd) || out == filepath.Dir(out) {
		return fmt.Errorf("export to %s: %w", outDir, ErrUnsafeOutDir)
	}
	if publicDir == "" {
		return nil
	}
	public, err := filepath.Abs(publicDir)
	if err != nil {
		return fmt.Errorf("resolve public directory %s: %w", publicDir, err)
	}
	if out == public || within(out, public) || within(public, out) {
		return fmt.Errorf("export to %s overlaps public dir %s: %w", outDir, publicDir, ErrUnsafeOutDir)
	}
	return nil
}

// within reports whether child is strictly inside parent.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

func copyFS(src fs.FS, dstDir string) error {
	return fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		in, err := src.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(dst)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return fmt.Errorf("copy %s: %w", path.Clean(p), err)
		}
		return out.Close()
	})
}
