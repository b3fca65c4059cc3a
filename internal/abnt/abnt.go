// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abnt formats bibliographic metadata according to the ABNT NBR 6023
// reference style: author-date in-text citations, reference-list entries,
// and sorted bibliographies.
//
// Every function in this package is a pure transform over types.Item. Missing
// fields never produce errors; they resolve to the placeholders the style
// mandates ([S.A.], [S.T.], [S.l.], [s.n.], s.d., [S.J.]).
package abnt

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholders for missing elements.
const (
	NoAuthor    = "[S.A.]"
	NoTitle     = "[S.T.]"
	NoPlace     = "[S.l.]"
	NoPublisher = "[s.n.]"
	NoDate      = "s.d."
	NoJournal   = "[S.J.]"

	// NoData is returned by FormatInTextCitation when neither an author
	// nor a year can be determined.
	NoData = "[s.n.]"

	noAccessDate   = "[informar data de acesso]"
	undatedSortKey = "0000"
)

// Mode selects how NormalizeAuthors renders names.
type Mode int

const (
	// CitationMode renders surnames only, collapsing long lists to "et al.".
	CitationMode Mode = iota
	// BibliographyMode renders "SURNAME, Given." for every author.
	BibliographyMode
)

func (m Mode) String() string {
	switch m {
	case CitationMode:
		return "citation"
	case BibliographyMode:
		return "bibliography"
	default:
		return "unknown"
	}
}

// upper applies Portuguese full case mapping. A Caser is stateful, so each
// call gets its own.
func upper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}

// Year extracts the publication year from an ISO-like date string. It
// reports false unless the first four bytes are ASCII digits.
func Year(date string) (string, bool) {
	if len(date) < 4 {
		return "", false
	}
	for i := 0; i < 4; i++ {
		if date[i] < '0' || date[i] > '9' {
			return "", false
		}
	}
	return date[:4], true
}

// rule is one step of a priority-ordered fallback chain. The first rule whose
// match reports true produces the result.
type rule[In, Out any] struct {
	name  string
	match func(In) bool
	apply func(In) Out
}

func firstMatch[In, Out any](rules []rule[In, Out], in In) Out {
	for _, r := range rules {
		if r.match(in) {
			return r.apply(in)
		}
	}
	var zero Out
	return zero
}

func always[In any](In) bool { return true }

// yearOr returns the item year, or fallback when the date carries none.
func yearOr(date, fallback string) string {
	return firstMatch([]rule[string, string]{
		{
			name:  "dated",
			match: func(d string) bool { _, ok := Year(d); return ok },
			apply: func(d string) string { y, _ := Year(d); return y },
		},
		{
			name:  "undated",
			match: always[string],
			apply: func(string) string { return fallback },
		},
	}, date)
}
