package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/pagemap/pkg/core"
)

const (
	// DefaultPattern selects top-level JavaScript modules.
	DefaultPattern = "*.js"
	// DefaultMaxDepth bounds recursive traversal.
	DefaultMaxDepth = 32
)

// DefaultExcludes are never treated as pages, nor descended into.
var DefaultExcludes = []string{
	"**/node_modules",
	"**/.*",
}

// Discoverer implements core.Source on top of the local filesystem.
type Discoverer struct {
	Root   string
	config Config

	mu            sync.RWMutex
	lastScan      *time.Time
	pageCount     int
	watcherActive bool
}

// Config holds the configuration for the filesystem discoverer.
type Config struct {
	Root           string   // Directory holding the page modules.
	Pattern        string   // doublestar pattern, matched against the base name when it has no "/".
	Recursive      bool     // Descend into subdirectories.
	FollowSymlinks bool     // Follow symlinked directories (guarded against cycles).
	MaxDepth       int      // Maximum directory depth below Root when Recursive.
	Excludes       []string // Extra doublestar patterns to ignore, on top of DefaultExcludes.
	Template       string   // Shared page-shell template.
	Logger         *slog.Logger
	ErrorHandler   func(error) // Receives non-fatal watcher errors.
}

// NewDiscoverer creates a new filesystem-backed page source.
func NewDiscoverer(config Config) *Discoverer {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if abs, err := filepath.Abs(config.Root); err == nil {
		config.Root = abs
	}
	config.Excludes = append(append([]string(nil), DefaultExcludes...), config.Excludes...)

	return &Discoverer{
		Root:   config.Root,
		config: config,
	}
}

// Discover scans the source root for page modules.
//
// Workflow:
//  1. Validate the root directory and the patterns.
//  2. Walk the tree (only the root itself unless Recursive), skipping excludes.
//  3. Derive an identifier per match and fail on any collision.
//  4. Return the pages sorted by relative path.
func (d *Discoverer) Discover(ctx context.Context) ([]core.Page, error) {
	info, err := os.Stat(d.Root)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("source root %s: %w", d.Root, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory: %w", d.Root, core.ErrNotFound)
	}

	if err := d.validatePatterns(); err != nil {
		return nil, err
	}

	w := &walker{
		discoverer: d,
		ancestors:  make(map[string]bool),
	}
	if err := w.walk(ctx, d.Root, "", 0); err != nil {
		return nil, err
	}

	sort.Slice(w.found, func(i, j int) bool {
		return w.found[i].rel < w.found[j].rel
	})

	pages := make([]core.Page, 0, len(w.found))
	for _, m := range w.found {
		pages = append(pages, core.Page{
			ID:     core.DerivePageID(m.rel),
			Source: m.abs,
		})
	}

	if err := core.CheckUnique(pages); err != nil {
		return nil, err
	}

	d.recordScan(len(pages))
	d.config.Logger.Debug("pages discovered", "root", d.Root, "pattern", d.config.Pattern, "count", len(pages))

	return pages, nil
}

// Template resolves the shared page-shell template.
func (d *Discoverer) Template(ctx context.Context) (string, error) {
	if d.config.Template == "" {
		return "", fmt.Errorf("no page template configured: %w", core.ErrNotFound)
	}

	abs, err := filepath.Abs(d.config.Template)
	if err != nil {
		return "", fmt.Errorf("failed to resolve template path: %w", err)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", fmt.Errorf("page template %s: %w", abs, core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat page template: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("page template %s is a directory: %w", abs, core.ErrNotFound)
	}
	return abs, nil
}

func (d *Discoverer) validatePatterns() error {
	if _, err := doublestar.Match(d.config.Pattern, ""); err != nil {
		return fmt.Errorf("%w %q: %v", core.ErrInvalidPattern, d.config.Pattern, err)
	}
	for _, pat := range d.config.Excludes {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("%w: exclude %q: %v", core.ErrInvalidPattern, pat, err)
		}
	}
	return nil
}

// matches reports whether rel (slash-separated, relative to Root) is a page.
func (d *Discoverer) matches(rel string) bool {
	target := rel
	if !strings.Contains(d.config.Pattern, "/") {
		target = path.Base(rel)
	}
	ok, err := doublestar.Match(d.config.Pattern, target)
	return err == nil && ok
}

// excluded reports whether rel matches one of the exclude patterns.
func (d *Discoverer) excluded(rel string) bool {
	for _, pat := range d.config.Excludes {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// relPath converts an absolute path under Root to the slash form used for matching.
func (d *Discoverer) relPath(abs string) (string, error) {
	rel, err := filepath.Rel(d.Root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes source root", abs)
	}
	return filepath.ToSlash(rel), nil
}
