// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/abnt"
)

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Print ABNT in-text citations for catalog or library items",
	Long: `Cite prints the author-date in-text citation of each selected item, one per
line, prefixed by the item ID. Use --page to cite a page or page range.`,
	RunE: runCite,
}

func init() {
	addSourceFlags(citeCmd)
	citeCmd.Flags().String("page", "", "page or page range to cite, e.g. 15 or 101-105")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	items, err := loadItems(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetString("page")

	for _, it := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", it.ID, abnt.FormatInTextCitation(it, page))
	}
	return nil
}
