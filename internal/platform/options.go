package platform

import (
	"log/slog"

	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

// options holds the internal configuration for the pagemap service.
// Fields left unset fall back to the project settings.
type options struct {
	source       core.Source
	logger       *slog.Logger
	config       map[string]interface{}
	errorHandler func(error)
}

// Option defines a functional option for configuring pagemap.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		source: nil,
		logger: nil,
		config: make(map[string]interface{}),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource allows injecting a custom page source (e.g. in-memory fixtures).
// If provided, the default filesystem discoverer will be skipped.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithPattern sets the glob used to select page modules (e.g. "*.ts").
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.config["pattern"] = pattern
	}
}

// WithRecursive enables discovery in subdirectories of the page root.
func WithRecursive(enabled bool) Option {
	return func(o *options) {
		o.config["recursive"] = enabled
	}
}

// WithFollowSymlinks follows symlinked directories during recursive discovery.
// Cycles are detected and reported as traversal errors.
func WithFollowSymlinks(enabled bool) Option {
	return func(o *options) {
		o.config["follow_symlinks"] = enabled
	}
}

// WithMaxDepth bounds recursive discovery.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.config["max_depth"] = depth
	}
}

// WithExcludes adds glob patterns that are never treated as pages.
func WithExcludes(patterns ...string) Option {
	return func(o *options) {
		o.config["excludes"] = patterns
	}
}

// WithTemplate sets the shared page-shell template.
func WithTemplate(path string) Option {
	return func(o *options) {
		o.config["template"] = path
	}
}

// WithWatcherErrorHandler registers a callback for non-fatal watcher errors
// (e.g. permission denied on a new directory), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// apply overlays the explicit options on top of the project settings.
func (o *options) apply(s config.Settings) config.Settings {
	if v, ok := o.config["pattern"].(string); ok && v != "" {
		s.Pattern = v
	}
	if v, ok := o.config["recursive"].(bool); ok {
		s.Recursive = v
	}
	if v, ok := o.config["follow_symlinks"].(bool); ok {
		s.FollowSymlinks = v
	}
	if v, ok := o.config["max_depth"].(int); ok && v > 0 {
		s.MaxDepth = v
	}
	if v, ok := o.config["excludes"].([]string); ok {
		s.Excludes = append(append([]string(nil), s.Excludes...), v...)
	}
	if v, ok := o.config["template"].(string); ok && v != "" {
		s.Template = v
	}
	return s
}
