// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// ErrNoItems is returned when asked to export an empty list.
var ErrNoItems = errors.New("no items to export")

// Exporter writes Zotero import files.
type Exporter struct {
	// Indent is the number of spaces per JSON nesting level; 0 writes
	// compact JSON.
	Indent int

	// PDFBase resolves relative LocalPDFFilename values.
	PDFBase string

	Log zerolog.Logger
}

// ResolvePDF returns the absolute path of item's PDF, or "" when it has
// none or the file does not exist. LocalPDFFilename is tried first (as is
// when absolute, else under PDFBase, else under the working directory),
// then LocalDownloadPath.
func (e *Exporter) ResolvePDF(item types.Item) string {
	var p string
	switch fn := item.LocalPDFFilename; {
	case fn == "":
	case filepath.IsAbs(fn):
		p = fn
	case e.PDFBase != "":
		p = filepath.Join(e.PDFBase, fn)
	default:
		p = fn
	}
	if p == "" {
		p = item.LocalDownloadPath
	}
	if p == "" {
		return ""
	}

	if _, err := os.Stat(p); err != nil {
		e.Log.Warn().Str("path", p).Str("item", item.ID).Str("title", item.Title).
			Msg("PDF not found, skipping attachment")
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// Convert builds Zotero records for items, attaching PDFs that exist.
func (e *Exporter) Convert(items []types.Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Convert(it, e.ResolvePDF(it))
	}
	return out
}

// Export writes items to w as a JSON array.
func (e *Exporter) Export(items []types.Item, w io.Writer) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.Indent))
	}
	if err := enc.Encode(e.Convert(items)); err != nil {
		return fmt.Errorf("encoding Zotero JSON: %w", err)
	}
	return nil
}

// WriteFile exports items to path, creating its directory. Nothing is
// written when items is empty.
func (e *Exporter) WriteFile(items []types.Item, path string) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := e.Export(items, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	e.Log.Info().Str("path", path).Int("items", len(items)).Msg("Zotero export written")
	return nil
}
