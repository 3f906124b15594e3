package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <category> <name> <location...>",
	Short: "Save a location in an existing category",
	Long: `Save a location in an existing category. The remaining arguments are joined
with spaces, so "locbot set Farms Iron -300 64 20" stores "-300 64 20".
A running bot picks the change up through its file watcher.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}

		e, err := registry.Set(cmd.Context(), args[0], args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q Saved!\n", e.Name)
		return nil
	},
}

func init() {
	// Coordinates may be negative; stop flag parsing at the category.
	setCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(setCmd)
}
