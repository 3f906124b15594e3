package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/locbot"
	"github.com/aretw0/locbot/internal/platform"
	"github.com/aretw0/locbot/pkg/core"
)

var (
	verbose    bool
	configPath string
	dataPath   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "locbot",
	Short: "A chat bot that keeps the server's shared list of Minecraft locations",
	Long: `locbot answers "!loc" commands in chat: it lists, looks up, saves and removes
named locations, keeps a pinned summary message up to date and helps line up
nether portals with the road grid. The subcommands also edit the registry offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		setupLogger(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest "+platform.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Location data file (overrides config)")
}

func setupLogger(level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// loadConfig resolves the config file, applies --data and adopts the
// configured log level unless --verbose was given.
func loadConfig() (locbot.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return locbot.Config{}, err
		}
		found, err := locbot.FindConfig(wd)
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, platform.ErrConfigNotFound):
			return locbot.Config{}, err
		}
	}

	cfg, err := locbot.LoadConfig(path)
	if err != nil {
		return locbot.Config{}, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	if !verbose {
		if level, err := cfg.Level(); err == nil {
			setupLogger(level)
		}
	}
	slog.Debug("config loaded", "file", path, "data", cfg.DataPath)
	return cfg, nil
}

// openRegistry loads the configured registry for offline commands.
func openRegistry(ctx context.Context) (*core.Registry, core.Repository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	registry, repo, err := locbot.Open(ctx, cfg, locbot.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open registry: %w", err)
	}
	return registry, repo, nil
}
