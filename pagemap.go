package pagemap

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/aretw0/pagemap/internal/platform"
	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Page is one discovered page module.
type Page = core.Page

// Plan is the synthesized set of per-page targets and directives.
type Plan = core.Plan

// Mode selects the development or production build variant.
type Mode = core.Mode

// Config is the assembled build configuration.
type Config = config.Config

// Project is an opened project directory.
type Project = platform.Project

const (
	Development = core.ModeDevelopment
	Production  = core.ModeProduction
)

// --- Configuration ---

// Option defines a functional option for configuring pagemap.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom page source.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithPattern sets the glob used to select page modules.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithRecursive enables discovery in subdirectories of the page root.
func WithRecursive(enabled bool) Option {
	return platform.WithRecursive(enabled)
}

// WithFollowSymlinks follows symlinked directories during recursive discovery.
func WithFollowSymlinks(enabled bool) Option {
	return platform.WithFollowSymlinks(enabled)
}

// WithMaxDepth bounds recursive discovery.
func WithMaxDepth(depth int) Option {
	return platform.WithMaxDepth(depth)
}

// WithExcludes adds glob patterns that are never treated as pages.
func WithExcludes(patterns ...string) Option {
	return platform.WithExcludes(patterns...)
}

// WithTemplate sets the shared page-shell template.
func WithTemplate(path string) Option {
	return platform.WithTemplate(path)
}

// WithWatcherErrorHandler registers a callback for non-fatal watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a service over the project at dir.
func New(dir string, opts ...Option) (*core.Service, error) {
	return platform.New(dir, opts...)
}

// Open prepares the project at dir without scanning it.
func Open(dir string, opts ...Option) (*Project, error) {
	return platform.Open(dir, opts...)
}

// --- Operations ---

// Generate discovers the pages under dir and returns the full build
// configuration for mode.
func Generate(ctx context.Context, dir string, mode Mode, opts ...Option) (*Config, error) {
	return platform.Generate(ctx, dir, mode, opts...)
}

// FindRoot looks upwards from dir for a project root.
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}

// ModeFromEnv reads the build mode from NODE_ENV.
func ModeFromEnv() Mode {
	return core.ModeFromEnv()
}

// Init writes a default pagemap.yaml into dir and returns its path.
func Init(dir string) (string, error) {
	return platform.WriteDefaultSettings(dir)
}
