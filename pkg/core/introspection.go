package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	SourceType string     `json:"source_type"`
	LastMode   Mode       `json:"last_mode,omitempty"`
	LastPages  []PageID   `json:"last_pages,omitempty"`
	LastBuild  *time.Time `json:"last_build,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sourceType := "unknown"
	if s.source != nil {
		sourceType = "source"
		if comp, ok := s.source.(introspection.Component); ok {
			sourceType = comp.ComponentType()
		}
	}

	state := ServiceState{SourceType: sourceType}
	if s.lastPlan != nil {
		built := s.lastBuild
		state.LastMode = s.lastPlan.Mode()
		state.LastPages = s.lastPlan.IDs()
		state.LastBuild = &built
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
