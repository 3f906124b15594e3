package locbot

import (
	"context"
	"log/slog"

	"github.com/aretw0/locbot/internal/platform"
	"github.com/aretw0/locbot/pkg/bot"
	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
)

// --- Configuration ---

// Config is the runtime configuration (see LoadConfig).
type Config = platform.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// LoadConfig reads the YAML file at path (optional) and LOCBOT_* environment overrides.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// FindConfig looks upwards from dir for locbot.yaml.
func FindConfig(dir string) (string, error) {
	return platform.FindConfig(dir)
}

// Option defines a functional option for wiring the bot.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// --- Factory ---

// Open loads the location registry without a chat session, for offline tooling.
func Open(ctx context.Context, cfg Config, opts ...Option) (*core.Registry, core.Repository, error) {
	return platform.Open(ctx, cfg, opts...)
}

// New creates a Bot replying through session.
func New(ctx context.Context, cfg Config, session chat.Session, opts ...Option) (*bot.Bot, error) {
	return platform.New(ctx, cfg, session, opts...)
}
