package core

import "context"

// Source defines the contract for discovering page modules.
// Adhering to this interface keeps synthesis independent of where pages
// live (local filesystem, in-memory fixtures, etc).
type Source interface {
	// Discover returns every page, sorted by source path.
	// The result is fully materialized; partial results are never returned.
	Discover(ctx context.Context) ([]Page, error)

	// Template resolves the shared page-shell template to an absolute path.
	Template(ctx context.Context) (string, error)
}

// Watchable defines an interface for sources that can report page changes.
type Watchable interface {
	// Watch emits an event whenever a page module is created, modified or removed.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
