package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the registry and storage state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, repo, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}

		status := map[string]any{registry.ComponentType(): registry.State()}
		if st, ok := repo.(introspection.Introspectable); ok {
			name := "repository"
			if comp, ok := repo.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			status[name] = st.State()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
