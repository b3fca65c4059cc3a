// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/juris-curador/pkg/types"
)

func TestNormalizeAuthors(t *testing.T) {
	silva := types.AuthorRef{FirstName: "João", LastName: "Silva"}
	costa := types.AuthorRef{FirstName: "Ana", LastName: "Costa"}
	santos := types.AuthorRef{FirstName: "Carlos", LastName: "Santos"}

	tests := []struct {
		name    string
		authors []types.AuthorRef
		mode    Mode
		want    string
	}{
		{"empty citation", nil, CitationMode, ""},
		{"empty bibliography", nil, BibliographyMode, ""},
		{"one author citation", []types.AuthorRef{silva}, CitationMode, "SILVA"},
		{"two authors citation", []types.AuthorRef{costa, santos}, CitationMode, "COSTA; SANTOS"},
		{"three authors citation", []types.AuthorRef{{LastName: "A"}, {LastName: "B"}, {LastName: "C"}}, CitationMode, "A et al."},
		{"four authors citation", []types.AuthorRef{costa, santos, silva, {LastName: "Lima"}}, CitationMode, "COSTA et al."},
		{"full given name", []types.AuthorRef{silva}, BibliographyMode, "SILVA, João."},
		{"initial with period", []types.AuthorRef{{FirstName: "J.", LastName: "Silva"}}, BibliographyMode, "SILVA, J."},
		{"bare lowercase initial", []types.AuthorRef{{FirstName: "j", LastName: "Silva"}}, BibliographyMode, "SILVA, J."},
		{"accented initial", []types.AuthorRef{{FirstName: "É.", LastName: "Souza"}}, BibliographyMode, "SOUZA, É."},
		{"no given name", []types.AuthorRef{{LastName: "Pereira"}}, BibliographyMode, "PEREIRA."},
		{"punctuation-only given name", []types.AuthorRef{{FirstName: ".", LastName: "Silva"}}, BibliographyMode, "SILVA."},
		{"symbol given name", []types.AuthorRef{{FirstName: "- ", LastName: "Silva"}}, BibliographyMode, "SILVA."},
		{"several authors joined", []types.AuthorRef{costa, santos}, BibliographyMode, "COSTA, Ana.; SANTOS, Carlos."},
		{"single token name", []types.AuthorRef{{Name: "UNESCO"}}, BibliographyMode, "UNESCO."},
		{
			"multi token name splits last token",
			[]types.AuthorRef{{Name: "Instituto Brasileiro de Geografia e Estatística"}},
			BibliographyMode,
			"ESTATÍSTICA, Instituto Brasileiro de Geografia e.",
		},
		{
			"multi token name citation uses surname only",
			[]types.AuthorRef{{Name: "Maria  da Silva"}},
			CitationMode,
			"SILVA",
		},
		{"last name wins over name", []types.AuthorRef{{LastName: "Costa", Name: "Outro Nome"}}, CitationMode, "COSTA"},
		{"unresolvable author dropped", []types.AuthorRef{{FirstName: "Ana"}, {LastName: "Costa"}}, CitationMode, "COSTA"},
		{"all unresolvable", []types.AuthorRef{{FirstName: "Ana"}, {Name: "   "}}, BibliographyMode, ""},
		{
			"dropped author changes collapsing",
			[]types.AuthorRef{costa, {FirstName: "Sem Sobrenome"}, santos},
			CitationMode,
			"COSTA; SANTOS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAuthors(tt.authors, tt.mode))
		})
	}
}

func TestUnresolvedAuthors(t *testing.T) {
	authors := []types.AuthorRef{
		{LastName: "Costa"},
		{FirstName: "Ana"},
		{Name: "Instituto"},
		{},
	}
	assert.Equal(t, []int{1, 3}, UnresolvedAuthors(authors))
	assert.Empty(t, UnresolvedAuthors([]types.AuthorRef{{LastName: "Costa"}}))
}

func TestIsInitial(t *testing.T) {
	tests := []struct {
		given string
		want  bool
	}{
		{"J", true},
		{"J.", true},
		{"Á.", true},
		{"Jo", false},
		{"João", false},
		{"J. R.", false},
		{".", false},
		{"..", false},
		{"1", false},
		{"J,", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isInitial(tt.given), "isInitial(%q)", tt.given)
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		date   string
		want   string
		wantOK bool
	}{
		{"2020-03-01", "2020", true},
		{"2022", "2022", true},
		{"1999/12", "1999", true},
		{"202", "", false},
		{"", "", false},
		{"jun. 2020", "", false},
		{"20x0", "", false},
	}
	for _, tt := range tests {
		got, ok := Year(tt.date)
		assert.Equal(t, tt.want, got, "Year(%q)", tt.date)
		assert.Equal(t, tt.wantOK, ok, "Year(%q) ok", tt.date)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "citation", CitationMode.String())
	assert.Equal(t, "bibliography", BibliographyMode.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
