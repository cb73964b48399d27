package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Service runs discovery and synthesis against a Source.
type Service struct {
	source Source
	logger *slog.Logger

	mu        sync.RWMutex
	lastPlan  *Plan
	lastBuild time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service.
func NewService(source Source, opts ...ServiceOption) *Service {
	s := &Service{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan discovers pages and synthesizes the targets for mode.
//
// Workflow:
//  1. Discover every page module (fails on missing root, collisions, cycles).
//  2. Resolve the shared page template.
//  3. Synthesize and verify the plan.
func (s *Service) Plan(ctx context.Context, mode Mode) (*Plan, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	pages, err := s.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	template, err := s.source.Template(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve template: %w", err)
	}

	plan, err := Synthesize(pages, template, mode)
	if err != nil {
		return nil, fmt.Errorf("synthesize targets: %w", err)
	}

	s.logger.Debug("plan synthesized", "mode", mode, "pages", plan.Len(), "template", template)

	s.mu.Lock()
	s.lastPlan = plan
	s.lastBuild = time.Now()
	s.mu.Unlock()

	return plan, nil
}

// Watch observes page changes if the source supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Source exposes the underlying page source.
func (s *Service) Source() Source {
	return s.source
}
