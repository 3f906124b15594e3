package platform

import (
	"context"

	"github.com/aretw0/locbot/pkg/bot"
	"github.com/aretw0/locbot/pkg/chat"
)

// New opens the registry named by cfg and wires a Bot replying through session.
func New(ctx context.Context, cfg Config, session chat.Session, opts ...Option) (*bot.Bot, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	registry, _, err := Open(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}

	return bot.New(registry, session, BotConfig(cfg), bot.WithLogger(o.logger)), nil
}

// BotConfig extracts the router settings from cfg.
func BotConfig(cfg Config) bot.Config {
	return bot.Config{
		ConsoleChannelID:   cfg.ConsoleChannelID,
		RelayAuthorID:      cfg.RelayAuthorID,
		BroadcastChannelID: cfg.BroadcastChannelID,
	}
}
