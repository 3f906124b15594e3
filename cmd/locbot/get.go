package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/locbot/pkg/core"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Look a location up by name, in any category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}

		e, ok := registry.Find(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrNotFound, args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.Name, e.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
