package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/locbot"
	"github.com/aretw0/locbot/internal/platform"
	"github.com/aretw0/locbot/pkg/adapters/gateway"
	"github.com/aretw0/locbot/pkg/bot"
	"github.com/aretw0/locbot/pkg/core"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the chat gateway and serve commands",
	Long: `Connect to the chat relay at gateway_url and answer "!loc" commands until
interrupted. Unless watch is disabled, hand edits of the data file are picked
up and mirrored to the pinned message.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.GatewayURL == "" {
			return errors.New("gateway_url is not configured (set it in the config or LOCBOT_GATEWAY_URL)")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, slog.Default())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// serve runs the gateway reader, the command dispatcher and the data file
// watcher until ctx is done or the connection drops.
func serve(ctx context.Context, cfg locbot.Config, logger *slog.Logger) error {
	registry, repo, err := locbot.Open(ctx, cfg, locbot.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}

	client, err := gateway.Dial(ctx, cfg.GatewayURL,
		gateway.WithToken(cfg.Token),
		gateway.WithSelfID(cfg.SelfID),
		gateway.WithLogger(logger.With("component", "gateway")),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	b := bot.New(registry, client, platform.BotConfig(cfg), bot.WithLogger(logger))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// A closed connection ends the whole run.
		defer cancel()
		return client.Run(ctx)
	})
	g.Go(func() error {
		return b.Serve(ctx, client.Messages())
	})

	if w, ok := repo.(core.Watchable); ok && cfg.Watch {
		events, err := w.Watch(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.DataPath, err)
		}
		g.Go(func() error {
			return b.Follow(ctx, events)
		})
	}

	// The file may have changed while the bot was down.
	g.Go(func() error {
		if err := b.Router.Pinner().Refresh(ctx); err != nil {
			logger.Warn("could not refresh pinned summary", "error", err)
		}
		return nil
	})

	logger.Info("locbot ready", "gateway", cfg.GatewayURL, "data", cfg.DataPath, "version", locbot.Version)
	err = g.Wait()
	logger.Info("locbot stopped")
	return err
}
