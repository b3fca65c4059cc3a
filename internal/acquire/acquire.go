// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads source PDFs for curation: direct PDF links,
// web pages that link to a PDF, arXiv IDs, and DOIs. Downloads are paced by
// a rate limiter, written through a temporary file, and never overwrite an
// existing file.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/juris-curador/internal/httputil"
	"github.com/pdiddy/juris-curador/pkg/types"
)

// browserUserAgent is sent when scraping pages, some of which refuse
// unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var (
	// ErrNoPDFLinks is returned by FindPDFOnPage when the page links to no PDF.
	ErrNoPDFLinks = errors.New("no PDF links found on page")
	// ErrAllLinksFailed is returned when PDF links were found but none downloaded.
	ErrAllLinksFailed = errors.New("found PDF links but none could be downloaded")
)

// Downloader fetches documents into Dir.
type Downloader struct {
	Client    *http.Client
	Dir       string
	UserAgent string
	Limiter   *rate.Limiter
	Log       zerolog.Logger

	// Retry re-sends requests refused with 429 or 503; nil sends once.
	Retry *httputil.Retrier

	// Now stamps access dates; nil means time.Now.
	Now func() time.Time
}

// NewDownloader returns a Downloader configured from cfg. Requests are
// spaced at least cfg.DownloadDelay apart.
func NewDownloader(cfg types.HTTPConfig, dir string, log zerolog.Logger) *Downloader {
	limit := rate.Inf
	if cfg.DownloadDelay > 0 {
		limit = rate.Every(cfg.DownloadDelay)
	}
	return &Downloader{
		Client:    &http.Client{Timeout: cfg.Timeout},
		Dir:       dir,
		UserAgent: cfg.UserAgent,
		Limiter:   rate.NewLimiter(limit, 1),
		Log:       log,
		Retry:     httputil.NewRetrier(log),
	}
}

func (d *Downloader) get(ctx context.Context, rawURL, userAgent, accept string) (*http.Response, error) {
	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	var resp *http.Response
	if d.Retry != nil {
		resp, err = d.Retry.Do(ctx, client, req)
	} else {
		resp, err = client.Do(req)
	}
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}
	return resp, nil
}

// DownloadPDF saves the document at pdfURL and returns its path. A
// response that does not declare a PDF content type is still saved, with a
// warning. When customName is empty the name comes from the URL.
func (d *Downloader) DownloadPDF(ctx context.Context, pdfURL, customName string) (string, error) {
	d.Log.Info().Str("url", pdfURL).Msg("downloading")

	resp, err := d.get(ctx, pdfURL, d.UserAgent, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !isPDFContentType(contentType) {
		d.Log.Warn().Str("url", pdfURL).Str("content_type", contentType).
			Msg("response does not look like a PDF, saving anyway")
	}

	name := customName
	if name == "" {
		name = filenameFromURL(pdfURL, contentType)
	}
	name = withPDFExtension(name, customName != "")

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", d.Dir, err)
	}
	dest, err := saveUnique(resp.Body, filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", pdfURL, err)
	}
	d.Log.Info().Str("path", dest).Msg("downloaded")
	return dest, nil
}

func isPDFContentType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/pdf")
	}
	return mt == "application/pdf"
}

// filenameFromURL takes the last path segment when it has an extension,
// otherwise falls back on the content type.
func filenameFromURL(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		if base != "." && base != "/" && strings.Contains(base, ".") {
			return base
		}
	}
	if strings.Contains(contentType, "application/pdf") {
		return "document.pdf"
	}
	return "downloaded_file"
}

// withPDFExtension makes sure name ends in .pdf. Custom names get the
// extension appended; derived names have theirs replaced.
func withPDFExtension(name string, custom bool) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	if custom {
		return name + ".pdf"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
}

// uniquePath returns p, or p with _1, _2, ... before the extension when
// the file already exists.
func uniquePath(p string) string {
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	candidate := p
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = stem + "_" + strconv.Itoa(n) + ext
	}
}

// saveUnique writes r through a temporary file in the destination directory
// and renames it to a free name derived from dest.
func saveUnique(r io.Reader, dest string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".acquire-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	final := uniquePath(dest)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return final, nil
}
