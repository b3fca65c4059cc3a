// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpans(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Text
	}{
		{"plain", "SILVA. Título.", Text{{Text: "SILVA. Título."}}},
		{"empty", "", nil},
		{
			"emphasis in the middle",
			"A. " + emphasize("Livro") + ". 2020.",
			Text{{Text: "A. "}, {Text: "Livro", Emphasis: true}, {Text: ". 2020."}},
		},
		{
			"emphasis at the end",
			"A. " + emphasize("Revista"),
			Text{{Text: "A. "}, {Text: "Revista", Emphasis: true}},
		},
		{
			"unterminated emphasis runs to the end",
			"A. " + emphOpen + "Revista",
			Text{{Text: "A. "}, {Text: "Revista", Emphasis: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSpans(tt.in))
		})
	}
}

func TestTextRenderers(t *testing.T) {
	text := parseSpans("A. " + emphasize("Direito.") + ". Disponível em: <https://x.org/?a=1&b=2>.")

	assert.Equal(t, "A. **Direito.**. Disponível em: <https://x.org/?a=1&b=2>.", text.Markdown())
	assert.Equal(t, "A. Direito. Disponível em: <https://x.org/?a=1&b=2>.", text.Plain())
	assert.Equal(t, "A. <b>Direito.</b>. Disponível em: &lt;https://x.org/?a=1&amp;b=2&gt;.", text.HTML())
}

func TestNormalizePunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SILVA , João .", "SILVA, João."},
		{"São Paulo :Editora", "São Paulo:Editora"},
		{"2020,.", "2020."},
		{"ed...", "ed."},
		{"a , .", "a."},
		{"Local:, 2020", "Local: 2020"},
		{"A;, B", "A; B"},
		{"a    b", "a b"},
		{"sem alterações.", "sem alterações."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePunctuation(tt.in), "normalizePunctuation(%q)", tt.in)
	}
}

func TestFinish(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"adds period", []string{"SILVA.", "Título"}, "SILVA. Título."},
		{"keeps period", []string{"SILVA.", "2020."}, "SILVA. 2020."},
		{"drops empty parts", []string{"SILVA.", "", "2020."}, "SILVA. 2020."},
		{"bracket closes", []string{"A.", "[Download Local: x.pdf]"}, "A. [Download Local: x.pdf]"},
		{"bracket with period", []string{"A.", "[S.l.]."}, "A. [S.l.]"},
		{"parenthesis with period", []string{"A.", "(Série, 2)."}, "A. (Série, 2)"},
		{"question mark", []string{"Por quê?"}, "Por quê?"},
		{"trailing comma", []string{"A.", "v. 3,"}, "A. v. 3."},
		{"nothing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, finish(tt.parts))
		})
	}
}
