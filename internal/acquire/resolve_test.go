// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/juris-curador/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType IdentifierType
		wantNorm string
	}{
		{"arxiv bare", "2301.07041", TypeArxiv, "2301.07041"},
		{"arxiv prefixed", "arXiv:2301.07041", TypeArxiv, "2301.07041"},
		{"arxiv versioned", "2301.07041v2", TypeArxiv, "2301.07041v2"},
		{"doi", "10.1234/rbdt.v10i2.5678", TypeDOI, "10.1234/rbdt.v10i2.5678"},
		{"doi prefixed", "doi:10.1038/s41586-024-07487-w", TypeDOI, "10.1038/s41586-024-07487-w"},
		{"doi url", "https://doi.org/10.1145/1234567.1234568", TypeDOI, "10.1145/1234567.1234568"},
		{"url", "https://www.planalto.gov.br/ccivil_03/leis/l8245.htm", TypeURL, "https://www.planalto.gov.br/ccivil_03/leis/l8245.htm"},
		{"url without host", "https://", TypeUnknown, "https://"},
		{"ftp", "ftp://example.org/a.pdf", TypeUnknown, "ftp://example.org/a.pdf"},
		{"bare word", "lei-8245", TypeUnknown, "lei-8245"},
		{"empty", "", TypeUnknown, ""},
		{"whitespace trimmed", "  2301.07041 ", TypeArxiv, "2301.07041"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotNorm := Classify(tt.input)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantNorm, gotNorm)
		})
	}
}

func TestSlugAndPDFURL(t *testing.T) {
	assert.Equal(t, "arxiv_2301_07041v2", Slug(TypeArxiv, "2301.07041v2"))
	assert.Equal(t, "doi_10_1234_rbdt_v10i2_5678", Slug(TypeDOI, "10.1234/rbdt.v10i2.5678"))
	assert.Equal(t, "l8245", Slug(TypeURL, "https://planalto.gov.br/leis/l8245.htm"))
	assert.Equal(t, urlHashSlug("https://example.com/"), Slug(TypeURL, "https://example.com/"))
	assert.True(t, strings.HasPrefix(urlHashSlug("x"), "url-"))
	assert.Equal(t, "unknown", Slug(TypeUnknown, "x"))

	assert.Equal(t, arxivPDFBase+"2301.07041", PDFURL(TypeArxiv, "2301.07041"))
	assert.Equal(t, doiBase+"10.1/x", PDFURL(TypeDOI, "10.1/x"))
	assert.Equal(t, "https://a.org/b.pdf", PDFURL(TypeURL, "https://a.org/b.pdf"))
	assert.Empty(t, PDFURL(TypeUnknown, "x"))

	assert.Equal(t, "doi", TypeDOI.String())
	assert.Equal(t, "unknown", IdentifierType(42).String())
}

const crossrefJSON = `{"message": {
	"type": "journal-article",
	"title": ["O impacto da inteligência artificial no direito processual"],
	"subtitle": ["Uma análise contemporânea"],
	"container-title": ["Revista Brasileira de Direito Tecnológico"],
	"volume": "10", "issue": "2", "page": "45-67",
	"publisher": "RBDT",
	"author": [{"given": "Ana", "family": "Costa"}, {"name": "Grupo de Pesquisa"}],
	"issued": {"date-parts": [[2022, 6, 15]]}
}}`

const arxivAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Legal Reasoning
      with Language Models</title>
    <summary> An abstract. </summary>
    <published>2023-01-17T18:00:00Z</published>
    <author><name>Maria Souza</name></author>
    <author><name>Pedro Lima</name></author>
  </entry>
</feed>`

// withServices points the API endpoints at a test server for one test.
func withServices(t *testing.T, oaPDF bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/crossref/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, crossrefJSON)
	})
	mux.HandleFunc("/arxiv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2301.07041", r.URL.Query().Get("id_list"))
		fmt.Fprint(w, arxivAtom)
	})
	var srvURL string
	mux.HandleFunc("/openalex/", func(w http.ResponseWriter, r *http.Request) {
		if !oaPDF {
			fmt.Fprint(w, `{"best_oa_location": null}`)
			return
		}
		fmt.Fprintf(w, `{"best_oa_location": {"pdf_url": %q}}`, srvURL+"/oa/article.pdf")
	})
	pdf := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, pdfBody)
	}
	mux.HandleFunc("/oa/", pdf)
	mux.HandleFunc("/pdf/", pdf)
	mux.HandleFunc("/doi/", pdf)
	mux.HandleFunc("/docs/paper.pdf", pdf)

	srv := httptest.NewServer(mux)
	srvURL = srv.URL
	t.Cleanup(srv.Close)

	saved := []string{arxivPDFBase, arxivAPIBase, doiBase, crossrefAPIBase, openAlexAPIBase}
	arxivPDFBase = srv.URL + "/pdf/"
	arxivAPIBase = srv.URL + "/arxiv"
	doiBase = srv.URL + "/doi/"
	crossrefAPIBase = srv.URL + "/crossref/"
	openAlexAPIBase = srv.URL + "/openalex/"
	t.Cleanup(func() {
		arxivPDFBase, arxivAPIBase, doiBase, crossrefAPIBase, openAlexAPIBase =
			saved[0], saved[1], saved[2], saved[3], saved[4]
	})
	return srv
}

func TestAcquireDOI(t *testing.T) {
	srv := withServices(t, true)
	d, _ := newTestDownloader(t)

	item, skipped, err := d.Acquire(context.Background(), "10.1234/rbdt.v10i2.5678")
	require.NoError(t, err)
	assert.False(t, skipped)

	assert.Equal(t, "doi_10_1234_rbdt_v10i2_5678", item.ID)
	assert.Equal(t, types.ItemJournalArticle, item.ItemType)
	assert.Equal(t, "O impacto da inteligência artificial no direito processual", item.Title)
	assert.Equal(t, "Uma análise contemporânea", item.Subtitle)
	assert.Equal(t, "Revista Brasileira de Direito Tecnológico", item.PublicationTitle)
	assert.Equal(t, "2022-06-15", item.Date)
	assert.Equal(t, "45-67", item.Pages)
	assert.Equal(t, []types.AuthorRef{{LastName: "Costa", FirstName: "Ana"}, {Name: "Grupo de Pesquisa"}}, item.Authors)
	assert.Equal(t, "10.1234/rbdt.v10i2.5678", item.DOI)
	assert.Equal(t, srv.URL+"/oa/article.pdf", item.URL, "open-access copy preferred")
	assert.Equal(t, "01 jan. 2024", item.AccessDate)
	assert.Equal(t, filepath.Join(d.Dir, "doi_10_1234_rbdt_v10i2_5678.pdf"), item.LocalDownloadPath)
}

func TestAcquireDOIWithoutOpenAccess(t *testing.T) {
	srv := withServices(t, false)
	d, _ := newTestDownloader(t)

	item, _, err := d.Acquire(context.Background(), "doi:10.1000/x")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/doi/10.1000/x", item.URL)
}

func TestAcquireArxivThenSkip(t *testing.T) {
	withServices(t, false)
	d, _ := newTestDownloader(t)

	item, skipped, err := d.Acquire(context.Background(), "arXiv:2301.07041")
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, types.ItemReport, item.ItemType)
	assert.Equal(t, "Legal Reasoning with Language Models", item.Title)
	assert.Equal(t, "2023-01-17", item.Date)
	assert.Equal(t, "Maria Souza", item.Authors[0].Name)
	assert.Equal(t, arxivAbsBase+"2301.07041", item.URL)

	again, skipped, err := d.Acquire(context.Background(), "2301.07041")
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, item.LocalDownloadPath, again.LocalDownloadPath)
	assert.Equal(t, item.Title, again.Title)
}

func TestAcquireBatch(t *testing.T) {
	srv := withServices(t, false)
	d, _ := newTestDownloader(t)
	var out bytes.Buffer

	result := d.AcquireBatch(context.Background(), []string{
		srv.URL + "/docs/paper.pdf",
		"2301.07041",
		"2301.07041",
		"not-an-identifier",
	}, &out)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Items, 3)

	direct := result.Items[0]
	assert.Equal(t, types.ItemDocument, direct.ItemType)
	assert.Equal(t, srv.URL+"/docs/paper.pdf", direct.URL)
	_, err := os.Stat(direct.LocalDownloadPath)
	assert.NoError(t, err)

	assert.Contains(t, out.String(), "failed:     not-an-identifier (unrecognized identifier format")
	assert.Contains(t, out.String(), "Batch summary: 2 downloaded, 1 skipped, 1 failed (total: 4)")
}

func TestAcquireBatchStopsWhenCancelled(t *testing.T) {
	srv := withServices(t, false)
	d, _ := newTestDownloader(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	result := d.AcquireBatch(ctx, []string{srv.URL + "/docs/paper.pdf", srv.URL + "/docs/paper.pdf"}, &out)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Total())
}

func TestBatchResult(t *testing.T) {
	r := BatchResult{Downloaded: 2, Skipped: 1}
	assert.Equal(t, 3, r.Total())
	assert.False(t, r.HasFailures())
}
