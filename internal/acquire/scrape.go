// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FindPDFOnPage fetches an HTML page, collects the links that look like
// PDFs, and downloads the first one that succeeds. Files are named
// customBase.pdf (customBase_<i>.pdf when the page has several links), or
// after the page host and the link's file name when customBase is empty.
func (d *Downloader) FindPDFOnPage(ctx context.Context, pageURL, customBase string) (string, error) {
	d.Log.Info().Str("url", pageURL).Msg("searching page for PDF links")

	resp, err := d.get(ctx, pageURL, browserUserAgent, "")
	if err != nil {
		return "", fmt.Errorf("fetching page %s: %w", pageURL, err)
	}
	links, err := pdfLinks(resp.Body, pageURL)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("parsing page %s: %w", pageURL, err)
	}
	if len(links) == 0 {
		return "", fmt.Errorf("%s: %w", pageURL, ErrNoPDFLinks)
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = strings.ReplaceAll(u.Host, ".", "_")
	}

	for i, link := range links {
		var name string
		switch {
		case customBase != "" && len(links) > 1:
			name = customBase + "_" + strconv.Itoa(i) + ".pdf"
		case customBase != "":
			name = customBase + ".pdf"
		default:
			base := filenameFromURL(link, "")
			name = host + "_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
		}

		path, err := d.DownloadPDF(ctx, link, name)
		if err == nil {
			return path, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		d.Log.Warn().Err(err).Str("link", link).Msg("PDF link failed")
	}
	return "", fmt.Errorf("%s: %w", pageURL, ErrAllLinksFailed)
}

// pdfLinks returns absolute URLs of anchors whose href names a PDF, or
// whose text mentions PDF and whose href is absolute or rooted.
func pdfLinks(body io.Reader, pageURL string) ([]string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href, ok := attr(n, "href"); ok && isPDFLink(href, nodeText(n)) {
				if ref, err := url.Parse(href); err == nil {
					links = append(links, base.ResolveReference(ref).String())
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func isPDFLink(href, text string) bool {
	h := strings.ToLower(href)
	if strings.HasSuffix(h, ".pdf") || strings.Contains(h, ".pdf?") {
		return true
	}
	return strings.Contains(strings.ToLower(text), "pdf") &&
		(strings.HasPrefix(href, "http") || strings.HasPrefix(href, "/"))
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
