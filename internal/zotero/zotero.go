// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero converts curated items into Zotero's JSON import format
// and links each item to its local PDF.
package zotero

import (
	"strings"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// Item is one record of a Zotero JSON import file. Empty fields are left
// out, except title.
type Item struct {
	ItemType            string       `json:"itemType"`
	Title               string       `json:"title"`
	Creators            []Creator    `json:"creators,omitempty"`
	Date                string       `json:"date,omitempty"`
	URL                 string       `json:"url,omitempty"`
	DOI                 string       `json:"DOI,omitempty"`
	PublicationTitle    string       `json:"publicationTitle,omitempty"`
	JournalAbbreviation string       `json:"journalAbbreviation,omitempty"`
	Volume              string       `json:"volume,omitempty"`
	Issue               string       `json:"issue,omitempty"`
	Pages               string       `json:"pages,omitempty"`
	Publisher           string       `json:"publisher,omitempty"`
	Place               string       `json:"place,omitempty"`
	Edition             string       `json:"edition,omitempty"`
	ISBN                string       `json:"ISBN,omitempty"`
	AbstractNote        string       `json:"abstractNote,omitempty"`
	Language            string       `json:"language,omitempty"`
	ShortTitle          string       `json:"shortTitle,omitempty"`
	Archive             string       `json:"archive,omitempty"`
	ArchiveLocation     string       `json:"archiveLocation,omitempty"`
	LibraryCatalog      string       `json:"libraryCatalog,omitempty"`
	CallNumber          string       `json:"callNumber,omitempty"`
	Rights              string       `json:"rights,omitempty"`
	Extra               string       `json:"extra,omitempty"`
	Series              string       `json:"series,omitempty"`
	SeriesNumber        string       `json:"seriesNumber,omitempty"`
	NumberOfVolumes     string       `json:"numberOfVolumes,omitempty"`
	ConferenceName      string       `json:"conferenceName,omitempty"`
	Tags                []Tag        `json:"tags,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty"`
}

// Creator is an author, editor or other contributor. Personal names use
// FirstName and LastName; institutions use Name.
type Creator struct {
	CreatorType string  `json:"creatorType"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Name        string  `json:"name,omitempty"`
}

// Tag is a Zotero keyword.
type Tag struct {
	Tag string `json:"tag"`
}

// Attachment links a local file to the item.
type Attachment struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	LocalPath string `json:"localPath"`
	MimeType  string `json:"mimeType"`
	ItemType  string `json:"itemType"`
	LinkMode  string `json:"linkMode"`
}

const (
	defaultTitle    = "No Title"
	defaultLanguage = "pt-BR"
	defaultCreator  = "author"
)

var zoteroTypes = []types.ItemType{
	types.ItemJournalArticle,
	types.ItemBook,
	types.ItemBookSection,
	types.ItemConferencePaper,
	types.ItemReport,
	types.ItemThesis,
	types.ItemWebpage,
	types.ItemManuscript,
	types.ItemPatent,
	types.ItemStatute,
	types.ItemCase,
}

// MapItemType returns the Zotero item type for t, matched without regard
// to case. Anything else becomes "document".
func MapItemType(t types.ItemType) string {
	for _, z := range zoteroTypes {
		if strings.EqualFold(string(t), string(z)) {
			return string(z)
		}
	}
	return string(types.ItemDocument)
}

// Creators converts authors, skipping those without any name.
func Creators(authors []types.AuthorRef) []Creator {
	var out []Creator
	for _, a := range authors {
		c := Creator{CreatorType: strings.ToLower(a.CreatorType)}
		if c.CreatorType == "" {
			c.CreatorType = defaultCreator
		}
		switch {
		case a.FirstName != "" || a.LastName != "":
			first, last := a.FirstName, a.LastName
			c.FirstName, c.LastName = &first, &last
		case a.Name != "":
			c.Name = a.Name
		default:
			continue
		}
		out = append(out, c)
	}
	return out
}

// Convert builds the Zotero record for item. pdfPath, when not empty, must
// be an existing file; it is attached as a linked file.
func Convert(item types.Item, pdfPath string) Item {
	z := Item{
		ItemType:            MapItemType(item.ItemType),
		Title:               item.Title,
		Creators:            Creators(item.Authors),
		Date:                item.Date,
		URL:                 item.URL,
		DOI:                 item.DOI,
		PublicationTitle:    item.PublicationTitle,
		JournalAbbreviation: item.JournalAbbreviation,
		Volume:              item.Volume,
		Issue:               item.Issue,
		Pages:               item.Pages,
		Publisher:           item.Publisher,
		Place:               item.Place,
		Edition:             item.Edition,
		ISBN:                item.ISBN,
		AbstractNote:        item.AbstractNote,
		Language:            item.Language,
		ShortTitle:          item.ShortTitle,
		Archive:             item.Archive,
		ArchiveLocation:     item.ArchiveLocation,
		LibraryCatalog:      item.LibraryCatalog,
		CallNumber:          item.CallNumber,
		Rights:              item.Rights,
		Extra:               item.Extra,
		Series:              item.Series,
		SeriesNumber:        item.SeriesNumber,
		NumberOfVolumes:     item.NumberOfVolumes,
		ConferenceName:      item.ConferenceName,
	}
	if z.Title == "" {
		z.Title = defaultTitle
	}
	if z.Language == "" {
		z.Language = defaultLanguage
	}
	for _, t := range item.Tags {
		z.Tags = append(z.Tags, Tag{Tag: t})
	}
	if pdfPath != "" {
		title := item.Title
		if title == "" {
			title = "Attached PDF"
		}
		z.Attachments = []Attachment{{
			Title:     title + " (PDF)",
			Path:      pdfPath,
			LocalPath: pdfPath,
			MimeType:  "application/pdf",
			ItemType:  "attachment",
			LinkMode:  "linked_file",
		}}
	}
	return z
}
