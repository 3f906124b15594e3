package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unpinCmd = &cobra.Command{
	Use:   "unpin",
	Short: "Forget the pinned summary record",
	Long: `Forget the pinned summary record. Use it when the pinned message was deleted
by hand: until then every set and remove fails to refresh it. Post a new one
with "!loc newpin".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		if err := registry.ClearPin(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Pin record cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpinCmd)
}
