// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"html"
	"strings"
)

// Span is a run of entry text with uniform emphasis.
type Span struct {
	Text     string `json:"text" yaml:"text"`
	Emphasis bool   `json:"emphasis,omitempty" yaml:"emphasis,omitempty"`
}

// Text is a formatted bibliography entry as a sequence of spans. Book titles
// and journal names are emphasized; renderers decide how emphasis looks.
type Text []Span

// Emphasis delimiters used while an entry is assembled and normalised. They
// are private-use code points, so they never collide with metadata, and they
// keep punctuation inside an emphasized run apart from punctuation after it
// exactly as the ** markup does.
const (
	emphOpen  = "\uE000"
	emphClose = "\uE001"
)

func emphasize(s string) string {
	return emphOpen + s + emphClose
}

// parseSpans splits an assembled entry into spans at the emphasis delimiters.
func parseSpans(s string) Text {
	var out Text
	emph := false
	for s != "" {
		delim := emphOpen
		if emph {
			delim = emphClose
		}
		i := strings.Index(s, delim)
		if i < 0 {
			out = appendSpan(out, s, emph)
			break
		}
		out = appendSpan(out, s[:i], emph)
		s = s[i+len(delim):]
		emph = !emph
	}
	return out
}

func appendSpan(t Text, s string, emph bool) Text {
	if s == "" {
		return t
	}
	return append(t, Span{Text: s, Emphasis: emph})
}

// Markdown renders emphasis as **text**.
func (t Text) Markdown() string {
	var b strings.Builder
	for _, s := range t {
		if s.Emphasis {
			b.WriteString("**")
			b.WriteString(s.Text)
			b.WriteString("**")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Plain renders the entry without emphasis. Dropping the delimiters can bring
// punctuation together, so the result is normalised again.
func (t Text) Plain() string {
	var b strings.Builder
	for _, s := range t {
		b.WriteString(s.Text)
	}
	return normalizePunctuation(b.String())
}

// HTML renders the entry as escaped HTML with <b> for emphasis.
func (t Text) HTML() string {
	var b strings.Builder
	for _, s := range t {
		if s.Emphasis {
			b.WriteString("<b>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</b>")
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return b.String()
}

// String implements fmt.Stringer with the Markdown rendering.
func (t Text) String() string {
	return t.Markdown()
}

// punctuationRules are applied in order, repeatedly, until the text stops
// changing.
var punctuationRules = [][2]string{
	{" ,", ","},
	{" .", "."},
	{" :", ":"},
	{",.", "."},
	{"..", "."},
	{":,", ":"},
	{";,", ";"},
	{"  ", " "},
}

func normalizePunctuation(s string) string {
	for {
		prev := s
		for _, r := range punctuationRules {
			s = strings.ReplaceAll(s, r[0], r[1])
		}
		if s == prev {
			return s
		}
	}
}

// terminators are the characters an entry may end with.
const terminators = ".])?!"

// finish joins the assembled parts and applies the closing punctuation rules:
// an entry ends in terminal punctuation, but a trailing bracket or
// parenthesis already closes it.
func finish(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	s := strings.TrimSpace(strings.Join(kept, " "))
	if s == "" {
		return ""
	}
	if strings.IndexByte(terminators, s[len(s)-1]) < 0 {
		s += "."
	}
	s = normalizePunctuation(s)
	if strings.HasSuffix(s, "].") || strings.HasSuffix(s, ").") {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}
