// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/juris-curador/internal/abnt"
	"github.com/pdiddy/juris-curador/pkg/types"
)

// Audit lists data problems that formatting silently papers over: authors
// without a usable surname, which are dropped from citations, and items
// with nothing to enter them by.
func Audit(items []types.Item) []Issue {
	var issues []Issue
	for _, it := range items {
		for _, idx := range abnt.UnresolvedAuthors(it.Authors) {
			issues = append(issues, Issue{
				ItemID:  it.ID,
				Message: fmt.Sprintf("author %d has no surname and is omitted", idx+1),
			})
		}
		if !it.HasEntryData() {
			issues = append(issues, Issue{
				ItemID:  it.ID,
				Message: "no author, publisher or title; entry uses placeholders",
			})
		}
	}
	return issues
}

// LogIssues writes each issue as a warning and returns how many there were.
func LogIssues(log zerolog.Logger, issues []Issue) int {
	for _, is := range issues {
		log.Warn().Str("item", is.ItemID).Msg(is.Message)
	}
	return len(issues)
}
