// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"strings"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// pseudoAuthorWords is how many title words stand in for a missing author
// of a web page.
const pseudoAuthorWords = 3

type citationInput struct {
	item    types.Item
	authors string
}

// citationAuthorRules pick the author element of an in-text citation.
var citationAuthorRules = []rule[citationInput, string]{
	{
		name:  "authors",
		match: func(in citationInput) bool { return in.authors != "" },
		apply: func(in citationInput) string { return in.authors },
	},
	{
		name: "webpage title",
		match: func(in citationInput) bool {
			return in.item.Type() == types.ItemWebpage && in.item.Title != ""
		},
		apply: func(in citationInput) string {
			words := strings.Fields(upper(in.item.Title))
			if len(words) <= pseudoAuthorWords {
				return strings.Join(words, " ")
			}
			return strings.Join(words[:pseudoAuthorWords], " ") + "..."
		},
	},
	{
		name: "corporate author",
		match: func(in citationInput) bool {
			return in.item.Publisher != "" && len(in.item.Authors) == 0
		},
		apply: func(in citationInput) string { return upper(in.item.Publisher) },
	},
	{
		name:  "anonymous",
		match: always[citationInput],
		apply: func(citationInput) string { return "" },
	},
}

// FormatInTextCitation returns the author-date citation for item, e.g.
// "(SILVA, 2020, p. 15)". An empty page omits the page element. When neither
// an author nor a year can be determined it returns NoData.
func FormatInTextCitation(item types.Item, page string) string {
	author := firstMatch(citationAuthorRules, citationInput{
		item:    item,
		authors: NormalizeAuthors(item.Authors, CitationMode),
	})

	_, dated := Year(item.Date)
	if author == "" && !dated {
		return NoData
	}

	parts := make([]string, 0, 3)
	if author != "" {
		parts = append(parts, author)
	}
	parts = append(parts, yearOr(item.Date, NoDate))
	if page != "" {
		parts = append(parts, "p. "+page)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
