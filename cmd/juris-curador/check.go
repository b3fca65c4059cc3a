// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/catalog"
)

var checkCmd = &cobra.Command{
	Use:   "check <catalog>",
	Short: "Validate a catalog file and report data problems",
	Long: `Check parses and validates a catalog, then lists problems that would make
citations incomplete: authors without a surname and items with nothing to
enter them by. It fails when the catalog is invalid, not when it only has
warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		issues := catalog.Audit(items)
		for _, is := range issues {
			fmt.Fprintln(cmd.OutOrStdout(), is)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d item(s), %d warning(s)\n", len(items), len(issues))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
