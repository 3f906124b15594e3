package core

import (
	"github.com/aretw0/introspection"
)

// RegistryState exposes internal state for observability.
type RegistryState struct {
	Categories     int    `json:"categories"`
	Entries        int    `json:"entries"`
	Pinned         bool   `json:"pinned"`
	PinChannel     string `json:"pin_channel,omitempty"`
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (r *Registry) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := 0
	for _, c := range r.doc.Categories {
		entries += len(c.Entries)
	}

	repoType := "unknown"
	if r.repo != nil {
		repoType = "repository"
		if comp, ok := r.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return RegistryState{
		Categories:     len(r.doc.Categories),
		Entries:        entries,
		Pinned:         !r.doc.Pin.IsZero(),
		PinChannel:     r.doc.Pin.ChannelID,
		RepositoryType: repoType,
	}
}

// ComponentType implements introspection.Component.
func (r *Registry) ComponentType() string {
	return "registry"
}

var _ introspection.Introspectable = (*Registry)(nil)
var _ introspection.Component = (*Registry)(nil)
