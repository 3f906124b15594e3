package platform

import (
	"context"

	"github.com/aretw0/locbot/pkg/adapters/fs"
	"github.com/aretw0/locbot/pkg/core"
)

// Open prepares the repository named by cfg and loads the registry from it.
func Open(ctx context.Context, cfg Config, opts ...Option) (*core.Registry, core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Path:   cfg.DataPath,
			Logger: o.logger.With("component", "store"),
		})
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	registry := core.NewRegistry(repo, o.logger.With("component", "registry"))
	if err := registry.Load(ctx); err != nil {
		return nil, nil, err
	}
	return registry, repo, nil
}
