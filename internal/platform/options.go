package platform

import (
	"log/slog"

	"github.com/aretw0/locbot/pkg/core"
)

// options holds the internal configuration for wiring the bot.
type options struct {
	repository core.Repository
	logger     *slog.Logger
}

// Option defines a functional option for wiring the bot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRepository injects a custom storage adapter (e.g. a mock).
// If provided, the JSON file adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
