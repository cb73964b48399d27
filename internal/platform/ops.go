package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

// Project bundles a service with the settings it was built from.
type Project struct {
	Dir      string
	Service  *core.Service
	Settings config.Settings
}

// Open prepares the project at dir without scanning it.
func Open(dir string, opts ...Option) (*Project, error) {
	abs, err := absDir(dir)
	if err != nil {
		return nil, err
	}
	svc, settings, err := newService(abs, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Project{Dir: abs, Service: svc, Settings: settings}, nil
}

// Build discovers pages, synthesizes the plan and assembles the configuration.
// Any failure aborts the whole build; no partial configuration is returned.
func (p *Project) Build(ctx context.Context, mode core.Mode) (*config.Config, error) {
	plan, err := p.Service.Plan(ctx, mode)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Assemble(plan, p.Settings)
	if err != nil {
		return nil, fmt.Errorf("assemble config: %w", err)
	}
	return cfg, nil
}

// Pages lists the pages of the project in discovery order.
func (p *Project) Pages(ctx context.Context) ([]core.Page, error) {
	return p.Service.Source().Discover(ctx)
}

// Generate is the one-shot form of Open followed by Build.
func Generate(ctx context.Context, dir string, mode core.Mode, opts ...Option) (*config.Config, error) {
	p, err := Open(dir, opts...)
	if err != nil {
		return nil, err
	}
	return p.Build(ctx, mode)
}
