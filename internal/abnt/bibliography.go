// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"sort"
	"strings"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// sortKey orders reference-list entries alphabetically by entry point, then
// year, then title.
type sortKey struct {
	entryPoint string
	year       string
	title      string
}

func (k sortKey) less(o sortKey) bool {
	if k.entryPoint != o.entryPoint {
		return k.entryPoint < o.entryPoint
	}
	if k.year != o.year {
		return k.year < o.year
	}
	return k.title < o.title
}

// sortEntryPointRules mirror entryPointRules but look only at the first
// author, since that is where the alphabetical position comes from.
var sortEntryPointRules = []rule[types.Item, string]{
	{
		name:  "first author",
		match: func(it types.Item) bool { return len(it.Authors) > 0 },
		apply: func(it types.Item) string {
			surname, _ := it.Authors[0].Split()
			return orDefault(upper(surname), NoAuthor)
		},
	},
	{
		name:  "corporate author",
		match: func(it types.Item) bool { return it.Publisher != "" },
		apply: func(it types.Item) string { return upper(it.Publisher) },
	},
	{
		name:  "title",
		match: func(it types.Item) bool { return it.Title != "" },
		apply: func(it types.Item) string { return upper(it.Title) },
	},
	{
		name:  "unknown",
		match: always[types.Item],
		apply: func(types.Item) string { return NoAuthor },
	},
}

func sortKeyFor(item types.Item) sortKey {
	return sortKey{
		entryPoint: firstMatch(sortEntryPointRules, item),
		year:       yearOr(item.Date, undatedSortKey),
		title:      upper(item.Title),
	}
}

// Sort returns a copy of items in reference-list order. The sort is stable:
// items with identical keys keep their input order.
func Sort(items []types.Item) []types.Item {
	type keyed struct {
		key  sortKey
		item types.Item
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{key: sortKeyFor(it), item: it}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].key.less(ks[j].key)
	})
	out := make([]types.Item, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// Bibliography formats every item and returns the entries in reference-list
// order.
func Bibliography(items []types.Item, includeDownloadLinks bool) []Text {
	sorted := Sort(items)
	entries := make([]Text, len(sorted))
	for i, it := range sorted {
		entries[i] = BibliographyEntry(it, includeDownloadLinks)
	}
	return entries
}

// GenerateBibliography returns the sorted reference list in Markdown, one
// entry per paragraph. It returns "" for no items.
func GenerateBibliography(items []types.Item, includeDownloadLinks bool) string {
	if len(items) == 0 {
		return ""
	}
	entries := Bibliography(items, includeDownloadLinks)
	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = e.Markdown()
	}
	return strings.Join(rendered, "\n\n")
}
