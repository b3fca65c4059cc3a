// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/juris-curador/internal/abnt"
	"github.com/pdiddy/juris-curador/pkg/types"
)

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Items      []types.Item
}

// Total returns the total number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any identifier failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (d *Downloader) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Acquire downloads the source named by identifier and returns an item
// describing it. arXiv IDs and DOIs already on disk are skipped, in which
// case skipped is true and the item points at the existing file.
func (d *Downloader) Acquire(ctx context.Context, identifier string) (item types.Item, skipped bool, err error) {
	idType, normalized := Classify(identifier)
	accessed := abnt.AccessDate(d.now())

	switch idType {
	case TypeURL:
		var p string
		itemType := types.ItemDocument
		if looksLikePDF(normalized) {
			p, err = d.DownloadPDF(ctx, normalized, "")
		} else {
			p, err = d.FindPDFOnPage(ctx, normalized, "")
			itemType = types.ItemWebpage
		}
		if err != nil {
			return types.Item{}, false, err
		}
		return types.Item{
			ID:                Slug(idType, normalized),
			ItemType:          itemType,
			URL:               normalized,
			AccessDate:        accessed,
			LocalDownloadPath: p,
		}, false, nil

	case TypeArxiv, TypeDOI:
		return d.acquireIdentifier(ctx, idType, normalized, accessed)

	default:
		return types.Item{}, false, fmt.Errorf("unrecognized identifier format: %q", identifier)
	}
}

func (d *Downloader) acquireIdentifier(ctx context.Context, idType IdentifierType, normalized, accessed string) (types.Item, bool, error) {
	slug := Slug(idType, normalized)
	pdfPath := filepath.Join(d.Dir, slug+".pdf")

	var (
		item types.Item
		err  error
	)
	if idType == TypeArxiv {
		item, err = d.fetchArxiv(ctx, normalized)
	} else {
		item, err = d.fetchCrossRef(ctx, normalized)
	}
	if err != nil {
		d.Log.Warn().Err(err).Str("id", normalized).Msg("metadata lookup failed")
		item = types.Item{}
	}
	item.ID = slug
	if idType == TypeDOI {
		item.DOI = normalized
	}
	item.AccessDate = accessed

	if _, err := os.Stat(pdfPath); err == nil {
		item.LocalDownloadPath = pdfPath
		return item, true, nil
	}

	pdfURL := PDFURL(idType, normalized)
	if idType == TypeDOI {
		if oa, err := d.openAccessPDF(ctx, normalized); err == nil && oa != "" {
			pdfURL = oa
		} else if err != nil {
			d.Log.Debug().Err(err).Str("doi", normalized).Msg("no open-access location")
		}
	}
	if item.URL == "" {
		item.URL = pdfURL
	}

	p, err := d.DownloadPDF(ctx, pdfURL, slug+".pdf")
	if err != nil {
		return types.Item{}, false, err
	}
	item.LocalDownloadPath = p
	return item, false, nil
}

// AcquireBatch processes identifiers in order, printing one status line per
// identifier and a summary to w. Failures are counted and the batch
// continues; a cancelled context stops it.
func (d *Downloader) AcquireBatch(ctx context.Context, identifiers []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, id := range identifiers {
		item, skipped, err := d.Acquire(ctx, id)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:     %s (%v)\n", id, err)
			result.Failed++
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
					result.Downloaded, result.Skipped, result.Failed, result.Total())
				return result
			}
			continue
		case skipped:
			fmt.Fprintf(w, "skipped:    %s (already exists)\n", item.LocalDownloadPath)
			result.Skipped++
		default:
			fmt.Fprintf(w, "downloaded: %s\n", item.LocalDownloadPath)
			result.Downloaded++
		}
		result.Items = append(result.Items, item)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}
