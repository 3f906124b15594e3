package main

import (
	"fmt"

	"github.com/aretw0/locbot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of locbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "locbot version %s\n", locbot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
