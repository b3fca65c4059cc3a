// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/catalog"
	"github.com/pdiddy/juris-curador/internal/library"
	"github.com/pdiddy/juris-curador/pkg/types"
)

// addSourceFlags registers the flags that choose where items are read from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "catalog file (.yaml, .yml or .json)")
	cmd.Flags().Bool("library", false, "read items from the library database")
	cmd.Flags().StringSlice("id", nil, "only use items with these IDs")
}

// loadItems reads items from the catalog or library named by the source
// flags, audits them, and filters them by --id.
func loadItems(ctx context.Context, cmd *cobra.Command) ([]types.Item, error) {
	path, _ := cmd.Flags().GetString("catalog")
	useLibrary, _ := cmd.Flags().GetBool("library")
	ids, _ := cmd.Flags().GetStringSlice("id")

	var (
		items []types.Item
		err   error
	)
	switch {
	case path != "" && useLibrary:
		return nil, fmt.Errorf("use either --catalog or --library, not both")
	case path != "":
		items, err = catalog.Load(path)
	case useLibrary:
		items, err = withLibrary(func(s *library.Store) ([]types.Item, error) {
			return s.List(ctx)
		})
	default:
		return nil, fmt.Errorf("provide a catalog file with --catalog or use --library")
	}
	if err != nil {
		return nil, err
	}

	catalog.LogIssues(log, catalog.Audit(items))

	if len(ids) == 0 {
		return items, nil
	}
	byID := make(map[string]types.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	selected := make([]types.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("item %q: %w", id, library.ErrNotFound)
		}
		selected = append(selected, it)
	}
	return selected, nil
}

// withLibrary opens the configured library for the duration of fn.
func withLibrary[T any](fn func(*library.Store) (T, error)) (T, error) {
	var zero T
	store, err := library.Open(cfg.Library.Path)
	if err != nil {
		return zero, err
	}
	defer store.Close()
	return fn(store)
}
