package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/locbot"
	"github.com/aretw0/locbot/internal/platform"
	"github.com/aretw0/locbot/pkg/adapters/console"
	"github.com/aretw0/locbot/pkg/adapters/fs"
	"github.com/aretw0/locbot/pkg/bot"
	"github.com/aretw0/locbot/pkg/core"
)

var (
	consoleChannel string
	consoleAuthor  string
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Talk to the bot from the terminal",
	Long: `Start an interactive session against the configured data file. Every line is
posted as a chat message, so "!loc list" or "!loc set Farms Iron 1 2 3" behave
exactly as they would in chat. Bot actions are echoed with their channel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		repo := &detachedPin{Repository: fs.NewRepository(fs.Config{Path: cfg.DataPath, Logger: slog.Default()})}
		registry, _, err := locbot.Open(ctx, cfg, locbot.WithLogger(slog.Default()), locbot.WithRepository(repo))
		if err != nil {
			return fmt.Errorf("failed to open registry: %w", err)
		}
		session := console.New(console.WithWriter(out), console.WithSelfID(cfg.SelfID))
		b := bot.New(registry, session, platform.BotConfig(cfg), bot.WithLogger(slog.Default()))

		fmt.Fprintf(out, "locbot %s console on #%s as %s (Ctrl-D to quit)\n", locbot.Version, consoleChannel, consoleAuthor)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			msg := session.Post(consoleChannel, consoleAuthor, line)
			if err := b.Router.Handle(ctx, msg); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
		fmt.Fprintln(out)
		return scanner.Err()
	},
}

func init() {
	consoleCmd.Flags().StringVar(&consoleChannel, "channel", "general", "Channel the lines are posted to")
	consoleCmd.Flags().StringVar(&consoleAuthor, "as", "operator", "Author id of the lines (use the relay id to act as the relay)")
	rootCmd.AddCommand(consoleCmd)
}

// detachedPin keeps the pin record in memory. The persisted one names a
// message in the real chat, which the console session cannot edit.
type detachedPin struct {
	core.Repository
	pin core.PinRecord
}

func (d *detachedPin) Load(ctx context.Context) (core.Document, error) {
	doc, err := d.Repository.Load(ctx)
	doc.Pin = d.pin
	return doc, err
}

func (d *detachedPin) SavePin(ctx context.Context, p core.PinRecord) error {
	d.pin = p
	return nil
}
