package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// DiscovererState exposes internal state for observability.
type DiscovererState struct {
	Root           string     `json:"root"`
	Pattern        string     `json:"pattern"`
	Recursive      bool       `json:"recursive"`
	FollowSymlinks bool       `json:"follow_symlinks"`
	MaxDepth       int        `json:"max_depth"`
	Excludes       []string   `json:"excludes"`
	Template       string     `json:"template"`
	PageCount      int        `json:"page_count"`
	LastScan       *time.Time `json:"last_scan,omitempty"`
	WatcherActive  bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (d *Discoverer) State() any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return DiscovererState{
		Root:           d.Root,
		Pattern:        d.config.Pattern,
		Recursive:      d.config.Recursive,
		FollowSymlinks: d.config.FollowSymlinks,
		MaxDepth:       d.config.MaxDepth,
		Excludes:       append([]string(nil), d.config.Excludes...),
		Template:       d.config.Template,
		PageCount:      d.pageCount,
		LastScan:       d.lastScan,
		WatcherActive:  d.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (d *Discoverer) ComponentType() string {
	return "fs-discoverer"
}

var _ introspection.Introspectable = (*Discoverer)(nil)
var _ introspection.Component = (*Discoverer)(nil)

func (d *Discoverer) setWatcherActive(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watcherActive = active
}

func (d *Discoverer) recordScan(count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	d.lastScan = &now
	d.pageCount = count
}
