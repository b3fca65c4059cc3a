// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ItemType classifies a source document. The zero value means "document".
type ItemType string

const (
	ItemJournalArticle ItemType = "journalArticle"
	ItemBook           ItemType = "book"
	ItemBookSection    ItemType = "bookSection"
	ItemReport         ItemType = "report"
	ItemWebpage        ItemType = "webpage"
	ItemOther          ItemType = "other"
	ItemDocument       ItemType = "document"

	// Accepted for reference-manager export; formatted like ItemDocument.
	ItemConferencePaper ItemType = "conferencePaper"
	ItemThesis          ItemType = "thesis"
	ItemManuscript      ItemType = "manuscript"
	ItemPatent          ItemType = "patent"
	ItemStatute         ItemType = "statute"
	ItemCase            ItemType = "case"
)

// OrDefault returns t, or ItemDocument when t is empty.
func (t ItemType) OrDefault() ItemType {
	if t == "" {
		return ItemDocument
	}
	return t
}

// AuthorRef names one creator of an item. Personal authors carry LastName and
// FirstName; institutional authors carry a single Name that is never split
// for citation purposes beyond taking its last token as the surname.
type AuthorRef struct {
	LastName  string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`

	// CreatorType is the reference-manager role (author, editor, ...).
	CreatorType string `json:"creatorType,omitempty" yaml:"creatorType,omitempty" validate:"omitempty,alpha"`
}

// Split resolves the surname and given name of the author. LastName wins
// when present; otherwise Name is split on whitespace with the last token as
// the surname. An empty surname means the author cannot be rendered.
func (a AuthorRef) Split() (surname, given string) {
	if a.LastName != "" {
		return a.LastName, a.FirstName
	}
	parts := strings.Fields(a.Name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
	}
}

// Item holds the bibliographic metadata of one curated source. All fields are
// optional; formatting substitutes style placeholders for missing values.
type Item struct {
	// ID identifies the item inside a catalog file or the library.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	ItemType         ItemType    `json:"itemType,omitempty" yaml:"itemType,omitempty" validate:"omitempty,oneof=journalArticle book bookSection report webpage other document conferencePaper thesis manuscript patent statute case"`
	Authors          []AuthorRef `json:"authors,omitempty" yaml:"authors,omitempty" validate:"dive"`
	Title            string      `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle         string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Date             string      `json:"date,omitempty" yaml:"date,omitempty"`
	Publisher        string      `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Place            string      `json:"place,omitempty" yaml:"place,omitempty"`
	PublicationTitle string      `json:"publicationTitle,omitempty" yaml:"publicationTitle,omitempty"`
	JournalPlace     string      `json:"journalPlace,omitempty" yaml:"journalPlace,omitempty"`
	Volume           string      `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue            string      `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages            string      `json:"pages,omitempty" yaml:"pages,omitempty"`
	Edition          string      `json:"edition,omitempty" yaml:"edition,omitempty"`
	Series           string      `json:"series,omitempty" yaml:"series,omitempty"`
	SeriesNumber     string      `json:"seriesNumber,omitempty" yaml:"seriesNumber,omitempty"`
	URL              string      `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	AccessDate       string      `json:"accessDate,omitempty" yaml:"accessDate,omitempty"`
	DOI              string      `json:"doi,omitempty" yaml:"doi,omitempty"`

	// LocalDownloadPath is where the source PDF was saved by acquire.
	LocalDownloadPath string `json:"localDownloadPath,omitempty" yaml:"localDownloadPath,omitempty"`

	// LocalPDFFilename is a PDF filename relative to the export base path.
	LocalPDFFilename string `json:"localPdfFilename,omitempty" yaml:"localPdfFilename,omitempty"`

	// Fields below are carried through to reference-manager export only.
	AbstractNote        string   `json:"abstractNote,omitempty" yaml:"abstractNote,omitempty"`
	Tags                []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	ISBN                string   `json:"ISBN,omitempty" yaml:"ISBN,omitempty"`
	Language            string   `json:"language,omitempty" yaml:"language,omitempty"`
	JournalAbbreviation string   `json:"journalAbbreviation,omitempty" yaml:"journalAbbreviation,omitempty"`
	ShortTitle          string   `json:"shortTitle,omitempty" yaml:"shortTitle,omitempty"`
	Archive             string   `json:"archive,omitempty" yaml:"archive,omitempty"`
	ArchiveLocation     string   `json:"archiveLocation,omitempty" yaml:"archiveLocation,omitempty"`
	LibraryCatalog      string   `json:"libraryCatalog,omitempty" yaml:"libraryCatalog,omitempty"`
	CallNumber          string   `json:"callNumber,omitempty" yaml:"callNumber,omitempty"`
	Rights              string   `json:"rights,omitempty" yaml:"rights,omitempty"`
	Extra               string   `json:"extra,omitempty" yaml:"extra,omitempty"`
	NumberOfVolumes     string   `json:"numberOfVolumes,omitempty" yaml:"numberOfVolumes,omitempty"`
	ConferenceName      string   `json:"conferenceName,omitempty" yaml:"conferenceName,omitempty"`
}

// Type returns the item type, defaulting to ItemDocument.
func (it Item) Type() ItemType {
	return it.ItemType.OrDefault()
}

// HasEntryData reports whether the item has at least a title, an author, or
// a publisher, the minimum for a meaningful citation.
func (it Item) HasEntryData() bool {
	return it.Title != "" || it.Publisher != "" || len(it.Authors) > 0
}
