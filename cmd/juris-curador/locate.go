// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/catalog"
	"github.com/pdiddy/juris-curador/internal/config"
	"github.com/pdiddy/juris-curador/internal/library"
	"github.com/pdiddy/juris-curador/internal/locate"
	"github.com/pdiddy/juris-curador/pkg/types"
)

var locateCmd = &cobra.Command{
	Use:   "locate <pdf> <text>",
	Short: "Find a quoted passage in a PDF and record highlights",
	Long: `Locate searches the text layer of a PDF for a passage. Exact matches are
tried first, then accent-insensitive matches, then the closest run of words.
Each hit is recorded as a highlight with its page, colour category, and, when
an item is given, its ABNT in-text citation. Highlights are appended to a
YAML sidecar in the annotated PDF directory and optionally stored in the
library.`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().String("catalog", "", "catalog file holding the cited item")
	locateCmd.Flags().String("item", "", "ID of the cited item (catalog or library)")
	locateCmd.Flags().Bool("library", false, "read the item from and store highlights in the library")
	locateCmd.Flags().Float64("min-score", 0, "minimum word overlap for approximate matches (default from config)")
	locateCmd.Flags().String("out-dir", "", "sidecar directory (default from config)")

	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	pdfPath, query := args[0], args[1]
	ctx := cmd.Context()

	catalogPath, _ := cmd.Flags().GetString("catalog")
	itemID, _ := cmd.Flags().GetString("item")
	useLibrary, _ := cmd.Flags().GetBool("library")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	if minScore <= 0 {
		minScore = cfg.Locate.MinScore
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = cfg.Directories.AnnotatedPDFs
	}

	var item *types.Item
	if itemID != "" {
		it, err := findItem(cmd, catalogPath, useLibrary, itemID)
		if err != nil {
			return err
		}
		item = &it
	}

	loc := &locate.Locator{
		MinScore: minScore,
		Colors:   config.HighlightColors(cfg, log),
		Log:      log,
	}
	set, err := loc.LocateFile(pdfPath, query, item)
	if err != nil {
		return err
	}

	for _, h := range set.Highlights {
		fmt.Fprintf(cmd.OutOrStdout(), "page %d\t%s\t%.2f\t%s\n", h.Page, h.Kind, h.Score, h.Citation)
	}

	sidecar, err := locate.WriteSidecar(outDir, set)
	if err != nil {
		return err
	}
	log.Info().Str("sidecar", sidecar).Int("highlights", len(set.Highlights)).Msg("highlights recorded")

	if useLibrary && item != nil {
		_, err := withLibrary(func(s *library.Store) (struct{}, error) {
			return struct{}{}, s.AddHighlights(ctx, set)
		})
		return err
	}
	return nil
}

func findItem(cmd *cobra.Command, catalogPath string, useLibrary bool, id string) (types.Item, error) {
	if useLibrary && catalogPath == "" {
		return withLibrary(func(s *library.Store) (types.Item, error) {
			return s.Get(cmd.Context(), id)
		})
	}
	if catalogPath == "" {
		return types.Item{}, fmt.Errorf("--item needs --catalog or --library")
	}
	items, err := catalog.Load(catalogPath)
	if err != nil {
		return types.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return types.Item{}, fmt.Errorf("item %q not in %s", id, catalogPath)
}
