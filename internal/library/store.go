// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists curated items and the highlights located in
// their PDFs in a local SQLite database.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// ErrNotFound is returned when an item ID is not in the library.
var ErrNotFound = errors.New("item not found")

// Store is the library database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the library at path and makes sure the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			item_type TEXT NOT NULL,
			title TEXT,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS highlights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			source TEXT NOT NULL,
			query TEXT NOT NULL,
			page INTEGER NOT NULL,
			text TEXT NOT NULL,
			kind TEXT NOT NULL,
			score REAL NOT NULL,
			category TEXT,
			color TEXT,
			citation TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_item_id ON highlights(item_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put inserts item or replaces the stored item with the same ID. An item
// without an ID is given a new one. Replacing keeps the item's position in
// List. The stored item is returned.
func (s *Store) Put(ctx context.Context, item types.Item) (types.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	data, err := json.Marshal(item)
	if err != nil {
		return types.Item{}, fmt.Errorf("encoding item %s: %w", item.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, item_type, title, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			item_type=excluded.item_type, title=excluded.title, data=excluded.data`,
		item.ID, string(item.Type()), item.Title, string(data),
	)
	if err != nil {
		return types.Item{}, fmt.Errorf("upserting item %s: %w", item.ID, err)
	}
	return item, nil
}

// Get returns the item with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Item, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM items WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Item{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Item{}, fmt.Errorf("querying item %s: %w", id, err)
	}
	return decodeItem(data)
}

// List returns every item in the order it was first added.
func (s *Store) List(ctx context.Context) ([]types.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item, err := decodeItem(data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Remove deletes an item and its highlights.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// SetPDF records where the item's PDF was downloaded.
func (s *Store) SetPDF(ctx context.Context, id, path string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	item.LocalDownloadPath = path
	_, err = s.Put(ctx, item)
	return err
}

func decodeItem(data string) (types.Item, error) {
	var item types.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return types.Item{}, fmt.Errorf("decoding stored item: %w", err)
	}
	return item, nil
}
