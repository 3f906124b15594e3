package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	WatcherActive bool       `json:"watcher_active"`
	LastReload    *time.Time `json:"last_reload,omitempty"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.store.mu.Lock()
	lastWrite := r.store.lastWrite
	r.store.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.store.Path,
		WatcherActive: r.watcherActive,
		LastReload:    r.lastReload,
		LastWrite:     lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "json-file"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
