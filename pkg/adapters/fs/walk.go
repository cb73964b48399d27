package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/aretw0/pagemap/pkg/core"
)

type match struct {
	rel string
	abs string
}

// walker performs one deterministic scan. ancestors holds the resolved
// directories on the current descent path, which is enough to detect
// symlink cycles without forbidding two links to the same directory.
type walker struct {
	discoverer *Discoverer
	ancestors  map[string]bool
	found      []match
}

func (w *walker) walk(ctx context.Context, dir, relDir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := w.discoverer.config
	if depth > cfg.MaxDepth {
		return &core.TraversalError{Path: dir, Reason: fmt.Sprintf("deeper than %d levels", cfg.MaxDepth)}
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if w.ancestors[real] {
		return &core.TraversalError{Path: dir, Reason: "symlink cycle back to " + real}
	}
	w.ancestors[real] = true
	defer delete(w.ancestors, real)

	// os.ReadDir sorts by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, e := range entries {
		abs := filepath.Join(dir, e.Name())
		rel := path.Join(relDir, e.Name())

		isDir := e.IsDir()
		if e.Type()&iofs.ModeSymlink != 0 {
			info, err := os.Stat(abs)
			if err != nil {
				cfg.Logger.Debug("skipping broken symlink", "path", abs, "error", err)
				continue
			}
			isDir = info.IsDir()
			if isDir && !cfg.FollowSymlinks {
				continue
			}
		}

		if w.discoverer.excluded(rel) {
			continue
		}

		if isDir {
			if !cfg.Recursive {
				continue
			}
			if err := w.walk(ctx, abs, rel, depth+1); err != nil {
				return err
			}
			continue
		}

		if !e.Type().IsRegular() && e.Type()&iofs.ModeSymlink == 0 {
			continue
		}
		if w.discoverer.matches(rel) {
			w.found = append(w.found, match{rel: rel, abs: abs})
		}
	}
	return nil
}
