package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
)

// Bot ties a Router to streams of inbound messages and document changes.
type Bot struct {
	Router   *Router
	Registry *core.Registry
	logger   *slog.Logger
}

// New creates a Bot. The registry must already be loaded.
func New(registry *core.Registry, session chat.Session, config Config, opts ...Option) *Bot {
	router := NewRouter(registry, session, config, opts...)
	return &Bot{Router: router, Registry: registry, logger: router.logger}
}

// Serve handles every message from messages until the channel closes or ctx
// is done. Each message runs in its own goroutine, so one slow or panicking
// command cannot hold up the next.
func (b *Bot) Serve(ctx context.Context, messages <-chan chat.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.Dispatch(ctx, msg)
		}
	}
}

// Dispatch handles msg asynchronously. Panics are recovered and logged.
func (b *Bot) Dispatch(ctx context.Context, msg chat.Message) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		// Handle already logs its own failures.
		_ = b.Router.Handle(ctx, msg)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		b.logger.Error("command panicked", "message", msg.ID, "error", err)
	}))
}

// Follow reloads the registry and refreshes the pin whenever the backing
// document changes outside the bot.
func (b *Bot) Follow(ctx context.Context, events <-chan core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if e.Type == core.EventDelete {
				b.logger.Warn("document removed externally, keeping in-memory registry", "path", e.ID)
				continue
			}
			if err := b.Sync(ctx); err != nil {
				b.logger.Error("failed to apply external edit", "path", e.ID, "error", err)
			}
		}
	}
}

// Sync reloads the registry and refreshes the pinned summary.
func (b *Bot) Sync(ctx context.Context) error {
	if err := b.Registry.Reload(ctx); err != nil {
		return err
	}
	if err := b.Router.Pinner().Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh pin: %w", err)
	}
	b.logger.Info("registry reloaded")
	return nil
}
