package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Categories can only be created here; chat users may only fill existing ones.
var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage location categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an empty category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}

		c, err := registry.AddCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Category %q created\n", c.Name)
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd)
	rootCmd.AddCommand(categoryCmd)
}
