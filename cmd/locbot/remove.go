package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <category> <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a location from a category",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}

		e, err := registry.Remove(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q removed!\n", e.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
