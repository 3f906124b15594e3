package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/locbot/pkg/adapters/fs"
	"github.com/aretw0/locbot/pkg/core"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [key...]",
	Short: "Print the raw stored value under a key path",
	Long: `Print the raw stored value under a key path, one argument per key:
"locbot dump locations Towns" prints the Towns object. Without arguments the
whole locations object is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, repo, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		backed, ok := repo.(interface{ Store() *fs.Store })
		if !ok {
			return errors.New("repository has no key-path store")
		}

		if len(args) == 0 {
			args = []string{fs.LocationsKey}
		}
		v, err := backed.Store().Get(cmd.Context(), fs.Path(args...), nil)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: %q", core.ErrNotFound, args)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
