// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/juris-curador/pkg/types"
)

type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Type           string           `json:"type"`
	Title          []string         `json:"title"`
	Subtitle       []string         `json:"subtitle"`
	ContainerTitle []string         `json:"container-title"`
	Publisher      string           `json:"publisher"`
	PublisherPlace string           `json:"publisher-location"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	ISBN           []string         `json:"ISBN"`
	Language       string           `json:"language"`
	Abstract       string           `json:"abstract"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// String renders the date as YYYY, YYYY-MM or YYYY-MM-DD.
func (d crossrefDate) String() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	p := d.DateParts[0]
	switch len(p) {
	case 1:
		return fmt.Sprintf("%04d", p[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", p[0], p[1])
	default:
		return fmt.Sprintf("%04d-%02d-%02d", p[0], p[1], p[2])
	}
}

var crossrefTypes = map[string]types.ItemType{
	"journal-article":     types.ItemJournalArticle,
	"book":                types.ItemBook,
	"monograph":           types.ItemBook,
	"edited-book":         types.ItemBook,
	"book-chapter":        types.ItemBookSection,
	"report":              types.ItemReport,
	"proceedings-article": types.ItemConferencePaper,
	"dissertation":        types.ItemThesis,
}

// fetchCrossRef builds item metadata for a DOI from the CrossRef API.
func (d *Downloader) fetchCrossRef(ctx context.Context, doi string) (types.Item, error) {
	resp, err := d.get(ctx, crossrefAPIBase+doi, d.UserAgent, "application/json")
	if err != nil {
		return types.Item{}, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return types.Item{}, fmt.Errorf("parsing CrossRef response: %w", err)
	}
	w := cr.Message

	item := types.Item{
		ItemType:     crossrefTypes[w.Type],
		DOI:          doi,
		Date:         w.Issued.String(),
		Publisher:    w.Publisher,
		Place:        w.PublisherPlace,
		Volume:       w.Volume,
		Issue:        w.Issue,
		Pages:        w.Page,
		Language:     w.Language,
		AbstractNote: strings.TrimSpace(w.Abstract),
	}
	if len(w.Title) > 0 {
		item.Title = strings.TrimSpace(w.Title[0])
	}
	if len(w.Subtitle) > 0 {
		item.Subtitle = strings.TrimSpace(w.Subtitle[0])
	}
	if len(w.ContainerTitle) > 0 {
		item.PublicationTitle = w.ContainerTitle[0]
	}
	if len(w.ISBN) > 0 {
		item.ISBN = w.ISBN[0]
	}
	for _, a := range w.Author {
		if a.Family == "" {
			item.Authors = append(item.Authors, types.AuthorRef{Name: a.Name})
			continue
		}
		item.Authors = append(item.Authors, types.AuthorRef{LastName: a.Family, FirstName: a.Given})
	}
	return item, nil
}

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// fetchArxiv builds item metadata for an arXiv preprint. Author names are
// stored whole and split on the last word when cited.
func (d *Downloader) fetchArxiv(ctx context.Context, arxivID string) (types.Item, error) {
	resp, err := d.get(ctx, arxivAPIBase+"?id_list="+url.QueryEscape(arxivID), d.UserAgent, "")
	if err != nil {
		return types.Item{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return types.Item{}, fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return types.Item{}, fmt.Errorf("no entries found for arXiv ID %s", arxivID)
	}

	e := feed.Entries[0]
	item := types.Item{
		ItemType:     types.ItemReport,
		Title:        strings.Join(strings.Fields(e.Title), " "),
		AbstractNote: strings.TrimSpace(e.Summary),
		Publisher:    "arXiv",
		URL:          arxivAbsBase + arxivID,
		Archive:      "arXiv",
	}
	if len(e.Published) >= 10 {
		item.Date = e.Published[:10]
	}
	for _, a := range e.Authors {
		item.Authors = append(item.Authors, types.AuthorRef{Name: strings.TrimSpace(a.Name)})
	}
	return item, nil
}
