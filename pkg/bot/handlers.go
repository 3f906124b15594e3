package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
	"github.com/aretw0/locbot/pkg/format"
)

func (r *Router) portalHelp(ctx context.Context, msg chat.Message, args []string) error {
	x, z, ok := parseCoordinates(args)
	if !ok {
		return r.reply(ctx, msg, usagePortalHelp)
	}
	return r.reply(ctx, msg, PortalFor(x, z).String())
}

func (r *Router) list(ctx context.Context, msg chat.Message, args []string) error {
	cats := r.registry.Categories()
	if len(args) > 0 && args[0] != "" {
		c, ok := r.registry.Category(args[0])
		if !ok {
			return r.reply(ctx, msg, fmt.Sprintf(`Invalid category "%s"`, args[0]))
		}
		cats = []core.Category{c}
	}

	if msg.AuthorID == r.config.RelayAuthorID && r.config.RelayAuthorID != "" {
		return r.send(ctx, r.config.BroadcastChannelID, format.Tellraw(format.AllStringInGame(cats)))
	}
	return r.reply(ctx, msg, format.AllString(cats))
}

func (r *Router) get(ctx context.Context, msg chat.Message, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return r.reply(ctx, msg, usageGet)
	}

	e, ok := r.registry.Find(args[0])
	if !ok {
		return r.reply(ctx, msg, fmt.Sprintf(`"%s" Not Found`, args[0]))
	}
	return r.reply(ctx, msg, fmt.Sprintf("%s: %s", e.Name, e.Text))
}

func (r *Router) set(ctx context.Context, msg chat.Message, args []string) error {
	if len(args) < 3 || args[0] == "" || args[1] == "" {
		return r.reply(ctx, msg, usageSet)
	}
	category, name, text := args[0], args[1], strings.Join(args[2:], " ")

	if _, err := r.registry.Set(ctx, category, name, text); err != nil {
		if errors.Is(err, core.ErrInvalidCategory) {
			return r.reply(ctx, msg, fmt.Sprintf(`Invalid category "%s"`, category))
		}
		return err
	}
	if err := r.pinner.Refresh(ctx); err != nil {
		return err
	}
	return r.reply(ctx, msg, fmt.Sprintf(`"%s" Saved!`, name))
}

func (r *Router) remove(ctx context.Context, msg chat.Message, args []string) error {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return r.reply(ctx, msg, usageRemove)
	}
	category, name := args[0], args[1]

	if _, err := r.registry.Remove(ctx, category, name); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidCategory):
			return r.reply(ctx, msg, fmt.Sprintf(`Invalid category "%s"`, category))
		case errors.Is(err, core.ErrInvalidLocation):
			return r.reply(ctx, msg, fmt.Sprintf(`Invalid location "%s"`, name))
		}
		return err
	}
	if err := r.pinner.Refresh(ctx); err != nil {
		return err
	}
	return r.reply(ctx, msg, fmt.Sprintf(`"%s" removed!`, name))
}

func (r *Router) newPin(ctx context.Context, msg chat.Message, args []string) error {
	if _, err := r.pinner.NewPin(ctx, msg.ChannelID); err != nil {
		return err
	}
	return r.session.Delete(ctx, msg.ChannelID, msg.ID)
}

func (r *Router) syncPin(ctx context.Context, msg chat.Message, args []string) error {
	if err := r.session.Delete(ctx, msg.ChannelID, msg.ID); err != nil {
		return err
	}
	return r.pinner.Sync(ctx)
}
