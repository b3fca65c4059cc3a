// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts the text layer of PDF files page by page.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmpty is returned for zero-length input.
var ErrEmpty = errors.New("empty PDF content")

// Page is the plain text of one page. Number is 1-based. Text is empty for
// pages without a text layer (scans) or that could not be decoded.
type Page struct {
	Number int
	Text   string
}

// Open extracts every page of the PDF at path.
func Open(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	pages, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

// Read extracts every page of the PDF held in r.
func Read(r io.ReaderAt, size int64) (pages []Page, err error) {
	if size == 0 {
		return nil, ErrEmpty
	}
	// The parser panics on some malformed files.
	defer func() {
		if p := recover(); p != nil {
			pages, err = nil, fmt.Errorf("open pdf: malformed document: %v", p)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	n := doc.NumPage()
	pages = make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, Page{Number: i, Text: pageText(doc.Page(i))})
	}
	return pages, nil
}

func pageText(p pdf.Page) (text string) {
	if p.V.IsNull() {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	s, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// HasText reports whether any page carries extractable text.
func HasText(pages []Page) bool {
	for _, p := range pages {
		if p.Text != "" {
			return true
		}
	}
	return false
}
