// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// IdentifierType classifies a source identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeArxiv
	TypeDOI
	TypeURL
)

func (t IdentifierType) String() string {
	switch t {
	case TypeArxiv:
		return "arxiv"
	case TypeDOI:
		return "doi"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}

// Service endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	arxivPDFBase    = "https://arxiv.org/pdf/"
	arxivAbsBase    = "https://arxiv.org/abs/"
	arxivAPIBase    = "https://export.arxiv.org/api/query"
	doiBase         = "https://doi.org/"
	crossrefAPIBase = "https://api.crossref.org/works/"
	openAlexAPIBase = "https://api.openalex.org/works/"
)

var (
	arxivPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)
	doiPattern   = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)
)

// Classify determines the identifier type and returns its normalised form.
// "arXiv:" and "doi:" prefixes and doi.org URLs are stripped.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}

	doi := strings.TrimPrefix(identifier, "doi:")
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/"} {
		doi = strings.TrimPrefix(doi, p)
	}
	if doiPattern.MatchString(doi) {
		return TypeDOI, doi
	}

	if u, err := url.Parse(identifier); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return TypeURL, identifier
	}

	return TypeUnknown, identifier
}

// Slug returns a filesystem-safe file name stem for the identifier.
func Slug(idType IdentifierType, normalized string) string {
	switch idType {
	case TypeArxiv:
		return "arxiv_" + strings.ReplaceAll(normalized, ".", "_")
	case TypeDOI:
		return "doi_" + strings.NewReplacer("/", "_", ":", "_", ".", "_").Replace(normalized)
	case TypeURL:
		u, err := url.Parse(normalized)
		if err != nil {
			return urlHashSlug(normalized)
		}
		base := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
		if base == "" || base == "." || base == "/" {
			return urlHashSlug(normalized)
		}
		return base
	default:
		return "unknown"
	}
}

// PDFURL returns the download URL for an arXiv ID or DOI. DOIs go through
// the doi.org resolver, whose redirects the HTTP client follows. Direct URLs
// are returned unchanged.
func PDFURL(idType IdentifierType, normalized string) string {
	switch idType {
	case TypeArxiv:
		return arxivPDFBase + normalized
	case TypeDOI:
		return doiBase + normalized
	case TypeURL:
		return normalized
	default:
		return ""
	}
}

// looksLikePDF reports whether a URL points straight at a PDF file rather
// than at a page that links to one.
func looksLikePDF(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

func urlHashSlug(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("url-%x", h[:8])
}

type openAlexWork struct {
	BestOALocation *struct {
		PDFURL string `json:"pdf_url"`
	} `json:"best_oa_location"`
}

// openAccessPDF asks OpenAlex for an open-access copy of a DOI. It returns
// "" when none is known.
func (d *Downloader) openAccessPDF(ctx context.Context, doi string) (string, error) {
	resp, err := d.get(ctx, openAlexAPIBase+"https://doi.org/"+doi, d.UserAgent, "application/json")
	if err != nil {
		return "", fmt.Errorf("OpenAlex lookup: %w", err)
	}
	defer resp.Body.Close()

	var w openAlexWork
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return "", fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	if w.BestOALocation == nil {
		return "", nil
	}
	return w.BestOALocation.PDFURL, nil
}
