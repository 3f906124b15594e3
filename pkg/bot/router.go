package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/pkg/errors"

	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
)

// Config names the channels and senders the router treats specially.
type Config struct {
	// ConsoleChannelID is ignored entirely.
	ConsoleChannelID string
	// RelayAuthorID is the one automated sender that is listened to. Its
	// list requests are answered in-game.
	RelayAuthorID string
	// BroadcastChannelID receives in-game renderings. Defaults to ConsoleChannelID.
	BroadcastChannelID string
}

type handlerFunc func(ctx context.Context, msg chat.Message, args []string) error

// Router parses "!loc" messages and dispatches them to command handlers.
type Router struct {
	registry *core.Registry
	session  chat.Session
	pinner   *Pinner
	config   Config
	logger   *slog.Logger
	handlers map[Command]handlerFunc
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger for the router and its pinner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a Router over registry, replying through session.
func NewRouter(registry *core.Registry, session chat.Session, config Config, opts ...Option) *Router {
	if config.BroadcastChannelID == "" {
		config.BroadcastChannelID = config.ConsoleChannelID
	}

	r := &Router{
		registry: registry,
		session:  session,
		config:   config,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pinner = NewPinner(registry, session, r.logger)

	r.handlers = map[Command]handlerFunc{
		CommandPortalHelp: r.portalHelp,
		CommandList:       r.list,
		CommandGet:        r.get,
		CommandSet:        r.set,
		CommandRemove:     r.remove,
		CommandNewPin:     r.newPin,
		CommandSyncPin:    r.syncPin,
	}
	return r
}

// Pinner returns the pinner the router refreshes after mutations.
func (r *Router) Pinner() *Pinner {
	return r.pinner
}

// Accepts reports whether msg should be considered at all.
func (r *Router) Accepts(msg chat.Message) bool {
	if msg.AuthorBot && msg.AuthorID != r.config.RelayAuthorID {
		return false
	}
	if r.config.ConsoleChannelID != "" && msg.ChannelID == r.config.ConsoleChannelID {
		return false
	}
	return true
}

// Handle processes one message. Failures of the handler itself are logged and
// returned; the sender never sees them.
func (r *Router) Handle(ctx context.Context, msg chat.Message) error {
	if !r.Accepts(msg) {
		return nil
	}
	rest, ok := commandText(msg.Content)
	if !ok {
		return nil
	}

	args, err := shellwords.SplitPosix(rest)
	if err != nil {
		r.logger.Debug("unparseable command", "content", msg.Content, "error", err)
		return r.reply(ctx, msg, HelpText)
	}
	if len(args) == 0 {
		return r.reply(ctx, msg, HelpText)
	}

	cmd, ok := ParseCommand(args[0])
	if !ok {
		if err := r.reply(ctx, msg, apology); err != nil {
			return err
		}
		return r.reply(ctx, msg, HelpText)
	}

	logger := r.logger.With("command", cmd.String(), "author", msg.AuthorID, "channel", msg.ChannelID)
	logger.Debug("dispatching command", "args", args[1:])

	if err := r.handlers[cmd](ctx, msg, args[1:]); err != nil {
		err = errors.WithMessagef(err, "command %s", cmd)
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

// commandText returns what follows the first "!loc" on its line.
func commandText(content string) (string, bool) {
	i := strings.Index(content, Prefix)
	if i < 0 {
		return "", false
	}
	rest := content[i+len(Prefix):]
	if nl := strings.IndexAny(rest, "\r\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return rest, true
}

func (r *Router) reply(ctx context.Context, msg chat.Message, content string) error {
	return r.send(ctx, msg.ChannelID, content)
}

func (r *Router) send(ctx context.Context, channelID, content string) error {
	if _, err := r.session.Send(ctx, channelID, content); err != nil {
		return errors.Wrapf(err, "send to %s", channelID)
	}
	return nil
}
