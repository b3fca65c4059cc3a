// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate finds a quoted passage in the pages of a source PDF and
// turns each hit into a page-level highlight carrying the matching ABNT
// in-text citation.
//
// Matching runs in three passes and stops at the first that finds anything:
// case-insensitive with whitespace collapsed, then the same with accents
// folded, then the best sliding window of words scored by token overlap.
package locate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/juris-curador/internal/abnt"
	"github.com/pdiddy/juris-curador/internal/pdftext"
	"github.com/pdiddy/juris-curador/pkg/types"
)

var (
	// ErrEmptyQuery is returned when the passage has no words.
	ErrEmptyQuery = errors.New("empty search text")
	// ErrNoText is returned when no page has a text layer.
	ErrNoText = errors.New("document has no extractable text")
	// ErrNotFound is returned when no pass matched.
	ErrNotFound = errors.New("text not found in document")
)

// DefaultMinScore is used when Locator.MinScore is not positive.
const DefaultMinScore = 0.6

// Locator searches page texts. The zero value is usable.
type Locator struct {
	// MinScore is the minimum overlap ratio accepted by the window pass.
	MinScore float64

	// Colors maps highlight categories to RGB colours in [0, 1].
	Colors map[string][]float64

	Log zerolog.Logger
}

// Locate searches pages for query. When item is non-nil every highlight
// carries its in-text citation for the page it was found on.
func (l *Locator) Locate(pages []pdftext.Page, query string, item *types.Item) ([]types.Highlight, error) {
	q := collapse(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if !pdftext.HasText(pages) {
		return nil, ErrNoText
	}

	hits := findExact(pages, lower(q), lower)
	kind, category := types.MatchExact, types.CategoryPrimary
	if len(hits) == 0 {
		hits = findExact(pages, fold(q), fold)
		kind, category = types.MatchFallback, types.CategorySecondary
	}
	if len(hits) == 0 {
		if h, ok := l.bestWindow(pages, q); ok {
			hits = []hit{h}
		}
		kind, category = types.MatchFallback, types.CategoryFallback
	}
	if len(hits) == 0 {
		l.Log.Debug().Str("query", q).Msg("no match")
		return nil, ErrNotFound
	}

	out := make([]types.Highlight, len(hits))
	for i, h := range hits {
		out[i] = types.Highlight{
			Page:     h.page,
			Text:     h.text,
			Kind:     kind,
			Score:    h.score,
			Category: category,
			Color:    l.color(category),
		}
		if item != nil {
			out[i].Citation = abnt.FormatInTextCitation(*item, strconv.Itoa(h.page))
		}
	}
	l.Log.Debug().Str("kind", string(kind)).Int("hits", len(out)).Msg("located")
	return out, nil
}

// LocateFile extracts the PDF at path and searches it. The returned set is
// ready to be written as a sidecar.
func (l *Locator) LocateFile(path, query string, item *types.Item) (types.HighlightSet, error) {
	pages, err := pdftext.Open(path)
	if err != nil {
		return types.HighlightSet{}, err
	}
	hs, err := l.Locate(pages, query, item)
	if err != nil {
		return types.HighlightSet{}, fmt.Errorf("%s: %w", path, err)
	}
	set := types.HighlightSet{Source: path, Query: collapse(query), Highlights: hs}
	if item != nil {
		set.ItemID = item.ID
	}
	return set, nil
}

func (l *Locator) color(category string) []float64 {
	if c, ok := l.Colors[category]; ok && len(c) == 3 {
		return append([]float64(nil), c...)
	}
	return []float64{1, 1, 0}
}

type hit struct {
	page  int
	text  string
	score float64
}

// findExact returns one hit per occurrence of needle in the normalised
// page texts. Hit text is cut from the page itself, so it keeps the case
// and accents printed in the document.
func findExact(pages []pdftext.Page, needle string, normalize func(string) string) []hit {
	var hits []hit
	for _, p := range pages {
		text := collapse(p.Text)
		hay, offsets := normalizedIndex(text, normalize)
		for start := 0; ; {
			i := strings.Index(hay[start:], needle)
			if i < 0 {
				break
			}
			at := start + i
			end := at + len(needle)
			hits = append(hits, hit{page: p.Number, text: text[offsets[at]:sourceEnd(text, offsets[end-1])], score: 1})
			start = end
		}
	}
	return hits
}

// normalizedIndex normalises s one rune at a time and records, for every
// byte of the result, the offset in s of the rune that produced it.
func normalizedIndex(s string, normalize func(string) string) (string, []int) {
	var b strings.Builder
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		n := normalize(string(r))
		b.WriteString(n)
		for j := 0; j < len(n); j++ {
			offsets = append(offsets, i)
		}
	}
	return b.String(), offsets
}

// sourceEnd returns the end of the rune starting at i, extended over any
// combining marks that follow it.
func sourceEnd(s string, i int) int {
	_, size := utf8.DecodeRuneInString(s[i:])
	i += size
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.Is(unicode.Mn, r) {
			break
		}
		i += size
	}
	return i
}

// bestWindow slides a window as wide as the query over each page's words
// and keeps the one sharing the most tokens with the query.
func (l *Locator) bestWindow(pages []pdftext.Page, query string) (hit, bool) {
	want := tokens(query)
	if len(want) == 0 {
		return hit{}, false
	}
	minScore := l.MinScore
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	var best hit
	for _, p := range pages {
		words := strings.Fields(p.Text)
		toks := make([]string, len(words))
		for i, w := range words {
			toks[i] = token(w)
		}
		width := min(len(want), len(toks))
		for i := 0; i+width <= len(toks) && width > 0; i++ {
			score := overlap(want, toks[i:i+width])
			if score > best.score {
				best = hit{page: p.Number, text: strings.Join(words[i:i+width], " "), score: score}
			}
		}
	}
	if best.score < minScore {
		return hit{}, false
	}
	return best, true
}

// overlap is the share of query tokens found in window, counting repeats.
func overlap(query, window []string) float64 {
	counts := make(map[string]int, len(window))
	for _, t := range window {
		if t != "" {
			counts[t]++
		}
	}
	matched := 0
	for _, t := range query {
		if counts[t] > 0 {
			counts[t]--
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

func tokens(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if t := token(w); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// token folds a word and trims surrounding punctuation.
func token(w string) string {
	return strings.TrimFunc(fold(w), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lower(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(s)
}

// fold lower-cases s and strips combining marks: "Ação" becomes "acao".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lower(s))
	if err != nil {
		return lower(s)
	}
	return out
}
