// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// AddHighlights stores the highlights of set under set.ItemID, which must
// already be in the library.
func (s *Store) AddHighlights(ctx context.Context, set types.HighlightSet) error {
	if _, err := s.Get(ctx, set.ItemID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO highlights (item_id, source, query, page, text, kind, score, category, color, citation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range set.Highlights {
		color, _ := json.Marshal(h.Color)
		_, err := stmt.ExecContext(ctx,
			set.ItemID, set.Source, set.Query, h.Page, h.Text,
			string(h.Kind), h.Score, h.Category, string(color), h.Citation,
		)
		if err != nil {
			return fmt.Errorf("inserting highlight on page %d: %w", h.Page, err)
		}
	}
	return tx.Commit()
}

// Highlights returns the highlights recorded for an item by page.
func (s *Store) Highlights(ctx context.Context, itemID string) ([]types.Highlight, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT page, text, kind, score, category, color, citation
		 FROM highlights WHERE item_id = ? ORDER BY page, id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying highlights: %w", err)
	}
	defer rows.Close()

	var out []types.Highlight
	for rows.Next() {
		var (
			h     types.Highlight
			kind  string
			color string
		)
		if err := rows.Scan(&h.Page, &h.Text, &kind, &h.Score, &h.Category, &color, &h.Citation); err != nil {
			return nil, fmt.Errorf("scanning highlight: %w", err)
		}
		h.Kind = types.MatchKind(kind)
		if color != "" && color != "null" {
			if err := json.Unmarshal([]byte(color), &h.Color); err != nil {
				return nil, fmt.Errorf("decoding highlight color: %w", err)
			}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Entry is one item of a library export with its highlights.
type Entry struct {
	Item       types.Item        `yaml:"item"`
	Highlights []types.Highlight `yaml:"highlights,omitempty"`
}

// ExportYAML writes the whole library to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	entries := make([]Entry, len(items))
	for i, it := range items {
		hs, err := s.Highlights(ctx, it.ID)
		if err != nil {
			return err
		}
		entries[i] = Entry{Item: it, Highlights: hs}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
