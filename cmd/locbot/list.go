package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/aretw0/locbot/pkg/format"
)

var (
	listChat   bool
	listInGame bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every category and location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		cats := registry.Categories()
		out := cmd.OutOrStdout()

		switch {
		case listChat:
			fmt.Fprint(out, format.AllString(cats))
			return nil
		case listInGame:
			fmt.Fprintln(out, format.Tellraw(format.AllStringInGame(cats)))
			return nil
		}

		tbl := table.New("Category", "Name", "Location").WithWriter(out).WithWidthFunc(runewidth.StringWidth)
		for _, c := range cats {
			if len(c.Entries) == 0 {
				tbl.AddRow(c.Name, "-", "-")
				continue
			}
			for _, e := range c.Entries {
				tbl.AddRow(c.Name, e.Name, e.Text)
			}
		}
		tbl.Print()
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listChat, "chat", false, "Print the chat rendering used by the pinned message")
	listCmd.Flags().BoolVar(&listInGame, "ingame", false, "Print the tellraw command sent to the game console")
	listCmd.MarkFlagsMutuallyExclusive("chat", "ingame")
	rootCmd.AddCommand(listCmd)
}
