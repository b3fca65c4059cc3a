// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchKind records how a citation was located in a PDF.
type MatchKind string

const (
	// MatchExact is a case-insensitive, whitespace-normalised hit.
	MatchExact MatchKind = "exact"
	// MatchFallback is a heuristic hit found when no exact text exists.
	MatchFallback MatchKind = "fallback"
)

// Highlight category names, used as keys into the configured colours.
const (
	CategoryPrimary   = "primary"
	CategorySecondary = "secondary"
	CategoryFallback  = "fallback"
)

// Highlight marks one located citation on a PDF page.
type Highlight struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// Text is the page text that matched.
	Text string `json:"text" yaml:"text"`

	// Kind tells whether the match was exact or heuristic.
	Kind MatchKind `json:"kind" yaml:"kind"`

	// Score is the match quality in [0, 1]; exact matches score 1.
	Score float64 `json:"score" yaml:"score"`

	// Category is the highlight colour category.
	Category string `json:"category" yaml:"category"`

	// Color is the RGB colour in [0, 1].
	Color []float64 `json:"color" yaml:"color,flow"`

	// Citation is the in-text citation for this page, e.g. "(SILVA, 2020, p. 15)".
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`
}

// HighlightSet is the sidecar document written next to an annotated PDF.
type HighlightSet struct {
	// Source is the PDF that was searched.
	Source string `json:"source" yaml:"source"`

	// ItemID links the highlights to a catalog or library item.
	ItemID string `json:"item_id,omitempty" yaml:"item_id,omitempty"`

	// Query is the citation text that was searched for.
	Query string `json:"query" yaml:"query"`

	Highlights []Highlight `json:"highlights" yaml:"highlights"`
}
