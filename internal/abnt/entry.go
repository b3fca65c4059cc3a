// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"strconv"
	"strings"

	"github.com/pdiddy/juris-curador/pkg/types"
)

type entryKind int

const (
	entryAuthor entryKind = iota
	entryCorporate
	entryTitle
	entryUnknown
)

type entryPoint struct {
	text string
	kind entryKind
}

type entryInput struct {
	item    types.Item
	authors string
}

// entryPointRules choose the leading element of a reference-list entry.
var entryPointRules = []rule[entryInput, entryPoint]{
	{
		name:  "authors",
		match: func(in entryInput) bool { return in.authors != "" },
		apply: func(in entryInput) entryPoint { return entryPoint{in.authors, entryAuthor} },
	},
	{
		name: "corporate author",
		match: func(in entryInput) bool {
			return in.item.Publisher != "" && len(in.item.Authors) == 0
		},
		apply: func(in entryInput) entryPoint {
			return entryPoint{upper(in.item.Publisher) + ".", entryCorporate}
		},
	},
	{
		// Authorless works, web pages included, enter by title.
		name:  "title",
		match: func(in entryInput) bool { return in.item.Title != "" },
		apply: func(in entryInput) entryPoint {
			return entryPoint{upper(in.item.Title) + ".", entryTitle}
		},
	},
	{
		name:  "unknown",
		match: always[entryInput],
		apply: func(entryInput) entryPoint { return entryPoint{NoAuthor, entryUnknown} },
	},
}

func selectEntryPoint(item types.Item) entryPoint {
	return firstMatch(entryPointRules, entryInput{
		item:    item,
		authors: NormalizeAuthors(item.Authors, BibliographyMode),
	})
}

// FormatBibliographyEntry returns the reference-list entry for item with
// emphasis rendered as **Markdown**. When includeDownloadLink is set and the
// item has a local download path, the entry ends with a link to it.
func FormatBibliographyEntry(item types.Item, includeDownloadLink bool) string {
	return BibliographyEntry(item, includeDownloadLink).Markdown()
}

// BibliographyEntry is FormatBibliographyEntry before rendering.
func BibliographyEntry(item types.Item, includeDownloadLink bool) Text {
	return parseSpans(composeEntry(item, includeDownloadLink))
}

func composeEntry(item types.Item, includeDownloadLink bool) string {
	itemType := item.Type()
	ep := selectEntryPoint(item)
	titleIsEntryPoint := ep.kind == entryTitle

	parts := []string{ep.text}

	if !titleIsEntryPoint {
		parts = append(parts, titleSegment(item))
	}

	if itemType == types.ItemJournalArticle {
		parts = append(parts, journalSegments(item)...)
	}

	if itemType == types.ItemBook && item.Edition != "" {
		parts = append(parts, editionSegment(item.Edition))
	}

	// The imprint is skipped when the title leads and nobody is credited.
	if (itemType == types.ItemBook || itemType == types.ItemReport) &&
		(!titleIsEntryPoint || len(item.Authors) > 0) {
		parts = append(parts, orDefault(item.Place, NoPlace)+":")
		parts = append(parts, orDefault(item.Publisher, NoPublisher)+",")
	}

	parts = appendYear(parts, yearOr(item.Date, NoDate))

	if item.Series != "" {
		series := item.Series
		if item.SeriesNumber != "" {
			series += ", " + item.SeriesNumber
		}
		parts = append(parts, "("+series+").")
	}

	if item.URL != "" {
		parts = append(parts, "Disponível em: <"+item.URL+">.")
		parts = append(parts, "Acesso em: "+orDefault(item.AccessDate, noAccessDate)+".")
	}

	if item.DOI != "" && !(item.URL != "" && strings.Contains(item.URL, item.DOI)) {
		parts = append(parts, "DOI: "+item.DOI+".")
	}

	if includeDownloadLink && item.LocalDownloadPath != "" {
		parts = append(parts, "[Download Local: "+item.LocalDownloadPath+"]")
	}

	return finish(parts)
}

// titleSegment renders "Title: Subtitle." with books emphasized.
func titleSegment(item types.Item) string {
	title := orDefault(item.Title, NoTitle)
	if item.Subtitle != "" {
		title += ": " + item.Subtitle
	}
	if item.Type() == types.ItemBook {
		title = emphasize(title)
	}
	return title + "."
}

func journalSegments(item types.Item) []string {
	segs := []string{emphasize(orDefault(item.PublicationTitle, NoJournal))}
	if item.JournalPlace != "" {
		segs = append(segs, item.JournalPlace+",")
	}
	if item.Volume != "" {
		segs = append(segs, "v. "+item.Volume+",")
	}
	if item.Issue != "" {
		segs = append(segs, "n. "+item.Issue+",")
	}
	if item.Pages != "" {
		pages := item.Pages
		if !strings.HasPrefix(pages, "p.") && !strings.HasPrefix(pages, "f.") {
			pages = "p. " + pages
		}
		segs = append(segs, pages+",")
	}
	return segs
}

func editionSegment(edition string) string {
	if _, err := strconv.Atoi(strings.TrimSpace(edition)); err == nil {
		return strings.TrimSpace(edition) + ". ed."
	}
	return edition + "."
}

// appendYear adds the year unless one of the last two parts already contains
// it, in which case a trailing comma on the last part becomes a period.
//
// The containment test is an approximation: a volume or page range holding
// the same digits also suppresses the year.
func appendYear(parts []string, year string) []string {
	tail := parts
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	for _, p := range tail {
		if strings.Contains(p, year) {
			last := len(parts) - 1
			if strings.HasSuffix(parts[last], ",") {
				parts[last] = strings.TrimSuffix(parts[last], ",") + "."
			}
			return parts
		}
	}
	return append(parts, year+".")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
