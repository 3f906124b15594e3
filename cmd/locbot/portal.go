package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/locbot/pkg/bot"
)

var portalCmd = &cobra.Command{
	Use:   "portal <x> <z>",
	Short: "Show where a nether portal goes for overworld x and z",
	Args:  cobra.ExactArgs(2),
	// Negative coordinates would otherwise be read as flags.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[0], err)
		}
		z, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid z %q: %w", args[1], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), bot.PortalFor(x, z))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portalCmd)
}
