package platform

import (
	"log/slog"

	"github.com/aretw0/pagemap/pkg/adapters/fs"
	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

// New creates a service over the project at dir.
//
//	svc, err := pagemap.New("./app", pagemap.WithRecursive(true))
//
// Project settings are read from dir/pagemap.yaml when present; options
// take precedence over the file.
func New(dir string, opts ...Option) (*core.Service, error) {
	svc, _, err := newService(dir, applyOptions(opts))
	return svc, err
}

// newService returns the service together with the effective, resolved settings.
func newService(dir string, o *options) (*core.Service, config.Settings, error) {
	settings, err := LoadSettings(dir)
	if err != nil {
		return nil, config.Settings{}, err
	}
	settings = o.apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, config.Settings{}, err
	}

	abs, err := absDir(dir)
	if err != nil {
		return nil, config.Settings{}, err
	}
	settings = settings.Resolve(abs)

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	src := o.source
	if src == nil {
		src = fs.NewDiscoverer(fs.Config{
			Root:           settings.Root,
			Pattern:        settings.Pattern,
			Recursive:      settings.Recursive,
			FollowSymlinks: settings.FollowSymlinks,
			MaxDepth:       settings.MaxDepth,
			Excludes:       settings.Excludes,
			Template:       settings.Template,
			Logger:         logger,
			ErrorHandler:   o.errorHandler,
		})
	}

	return core.NewService(src, core.WithServiceLogger(logger)), settings, nil
}
