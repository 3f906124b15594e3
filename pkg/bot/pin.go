package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
	"github.com/aretw0/locbot/pkg/format"
)

// Pinner maintains the single pinned summary message mirroring the registry.
type Pinner struct {
	registry *core.Registry
	session  chat.Session
	logger   *slog.Logger

	// mu orders render-and-edit so the last edit carries the newest render.
	mu sync.Mutex
}

// NewPinner creates a Pinner.
func NewPinner(registry *core.Registry, session chat.Session, logger *slog.Logger) *Pinner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pinner{registry: registry, session: session, logger: logger}
}

// NewPin posts the full registry to channelID, pins it and records it as the
// pin. Any earlier pin record is replaced.
func (p *Pinner) NewPin(ctx context.Context, channelID string) (chat.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg, err := p.session.Send(ctx, channelID, format.AllString(p.registry.Categories()))
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to send summary: %w", err)
	}
	if err := p.session.Pin(ctx, msg.ChannelID, msg.ID); err != nil {
		return chat.Message{}, fmt.Errorf("failed to pin summary: %w", err)
	}

	rec := core.PinRecord{ChannelID: msg.ChannelID, MessageID: msg.ID}
	if err := p.registry.SetPin(ctx, rec); err != nil {
		return chat.Message{}, err
	}

	p.logger.Info("summary pinned", "channel", rec.ChannelID, "message", rec.MessageID)
	return msg, nil
}

// Sync re-renders the registry into the pinned message. A stale pin record
// surfaces as chat.ErrUnknownMessage; it is not repaired.
func (p *Pinner) Sync(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, err := p.registry.Pin()
	if err != nil {
		return err
	}
	if err := p.session.Edit(ctx, rec.ChannelID, rec.MessageID, format.AllString(p.registry.Categories())); err != nil {
		return fmt.Errorf("failed to edit pinned summary %s/%s: %w", rec.ChannelID, rec.MessageID, err)
	}
	return nil
}

// Refresh is Sync for callers that mutated the registry: having no pin yet is fine.
func (p *Pinner) Refresh(ctx context.Context) error {
	err := p.Sync(ctx)
	if errors.Is(err, core.ErrNoPin) {
		p.logger.Debug("no pinned summary to refresh")
		return nil
	}
	return err
}
