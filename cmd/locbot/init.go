package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/locbot"
	"github.com/aretw0/locbot/internal/platform"
)

var initForce bool

// initCmd writes a starter config and creates the data file.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a " + platform.ConfigFileName + " and an empty location file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		path := filepath.Join(dir, platform.ConfigFileName)
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		cfg := locbot.DefaultConfig()
		cfg.DataPath = "data.json"
		if dataPath != "" {
			cfg.DataPath = dataPath
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		if !filepath.IsAbs(cfg.DataPath) {
			cfg.DataPath = filepath.Join(dir, cfg.DataPath)
		}
		if _, _, err := locbot.Open(cmd.Context(), cfg); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized locbot in", dir)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
