// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// NormalizeAuthors renders an author list for the given mode. Authors whose
// surname cannot be resolved are skipped; an empty result tells the caller to
// fall back to another entry point.
//
// CitationMode yields "SILVA", "SILVA; COSTA" or "SILVA et al.".
// BibliographyMode yields "SILVA, João.; COSTA, A.; PEREIRA." joined by "; ".
func NormalizeAuthors(authors []types.AuthorRef, mode Mode) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		surname, given := a.Split()
		if surname == "" {
			continue
		}
		surname = upper(surname)

		if mode == CitationMode {
			names = append(names, surname)
			continue
		}

		switch {
		case !strings.ContainsFunc(given, unicode.IsLetter):
			names = append(names, surname+".")
		case isInitial(given):
			names = append(names, surname+", "+upper(strings.ReplaceAll(given, ".", ""))+".")
		default:
			names = append(names, surname+", "+given+".")
		}
	}

	if len(names) == 0 {
		return ""
	}
	if mode == BibliographyMode {
		return strings.Join(names, "; ")
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + "; " + names[1]
	default:
		return names[0] + " et al."
	}
}

// UnresolvedAuthors returns the indexes of authors that NormalizeAuthors
// would drop because no surname can be derived.
func UnresolvedAuthors(authors []types.AuthorRef) []int {
	var idx []int
	for i, a := range authors {
		if surname, _ := a.Split(); surname == "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// isInitial reports whether a given name is a lone initial: one letter,
// optionally followed by a period, as in "J" or "J.".
func isInitial(given string) bool {
	r, size := utf8.DecodeRuneInString(given)
	if !unicode.IsLetter(r) {
		return false
	}
	rest := given[size:]
	return rest == "" || rest == "."
}
