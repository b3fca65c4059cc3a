// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/juris-curador/pkg/types"
)

func TestMapItemType(t *testing.T) {
	tests := []struct {
		in   types.ItemType
		want string
	}{
		{"journalArticle", "journalArticle"},
		{"JOURNALARTICLE", "journalArticle"},
		{"book", "book"},
		{"bookSection", "bookSection"},
		{"statute", "statute"},
		{"case", "case"},
		{"webpage", "webpage"},
		{"", "document"},
		{"other", "document"},
		{"podcast", "document"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapItemType(tt.in), "MapItemType(%q)", tt.in)
	}
}

func TestCreators(t *testing.T) {
	got := Creators([]types.AuthorRef{
		{FirstName: "Ana", LastName: "Costa"},
		{LastName: "Santos", CreatorType: "Editor"},
		{Name: "Instituto Brasileiro de Geografia e Estatística"},
		{},
	})
	require.Len(t, got, 3)

	assert.Equal(t, "author", got[0].CreatorType)
	assert.Equal(t, "Ana", *got[0].FirstName)
	assert.Equal(t, "Costa", *got[0].LastName)

	assert.Equal(t, "editor", got[1].CreatorType)
	assert.Equal(t, "", *got[1].FirstName, "a personal name always carries both keys")

	assert.Equal(t, "Instituto Brasileiro de Geografia e Estatística", got[2].Name)
	assert.Nil(t, got[2].FirstName)
	assert.Nil(t, Creators(nil))
}

func TestConvertDefaultsAndOmission(t *testing.T) {
	z := Convert(types.Item{}, "")
	data, err := json.Marshal(z)
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemType": "document", "title": "No Title", "language": "pt-BR"}`, string(data))
}

func TestConvertFull(t *testing.T) {
	item := types.Item{
		ItemType:         types.ItemBook,
		Title:            "Manual de Direito Civil",
		Authors:          []types.AuthorRef{{FirstName: "João", LastName: "Silva"}},
		Date:             "2020",
		Edition:          "5",
		Place:            "São Paulo",
		Publisher:        "Editora Jurídica Atlas",
		Series:           "Manuais Jurídicos Essenciais",
		SeriesNumber:     "3",
		Language:         "pt",
		Tags:             []string{"civil", "manual"},
		ISBN:             "978-85-00-00000-0",
		PublicationTitle: "Coleção",
	}
	z := Convert(item, "/abs/manual_civil.pdf")

	assert.Equal(t, "book", z.ItemType)
	assert.Equal(t, "pt", z.Language)
	assert.Equal(t, []Tag{{Tag: "civil"}, {Tag: "manual"}}, z.Tags)
	assert.Equal(t, "Coleção", z.PublicationTitle)
	require.Len(t, z.Attachments, 1)
	assert.Equal(t, Attachment{
		Title:     "Manual de Direito Civil (PDF)",
		Path:      "/abs/manual_civil.pdf",
		LocalPath: "/abs/manual_civil.pdf",
		MimeType:  "application/pdf",
		ItemType:  "attachment",
		LinkMode:  "linked_file",
	}, z.Attachments[0])

	untitled := Convert(types.Item{}, "/abs/x.pdf")
	assert.Equal(t, "Attached PDF (PDF)", untitled.Attachments[0].Title)
}

func TestResolvePDF(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF"), 0o644))

	var logs bytes.Buffer
	e := &Exporter{PDFBase: dir, Log: zerolog.New(&logs)}

	assert.Equal(t, existing, e.ResolvePDF(types.Item{LocalPDFFilename: "doc.pdf"}))
	assert.Equal(t, existing, e.ResolvePDF(types.Item{LocalPDFFilename: existing}))
	assert.Equal(t, existing, e.ResolvePDF(types.Item{LocalDownloadPath: existing}))
	assert.Equal(t, existing, e.ResolvePDF(types.Item{LocalPDFFilename: "doc.pdf", LocalDownloadPath: "/elsewhere.pdf"}))
	assert.Empty(t, e.ResolvePDF(types.Item{}))

	assert.Empty(t, e.ResolvePDF(types.Item{ID: "gone", LocalPDFFilename: "missing.pdf"}))
	assert.Contains(t, logs.String(), "PDF not found")
	assert.Contains(t, logs.String(), `"item":"gone"`)

	chdir(t, dir)
	noBase := &Exporter{}
	assert.Equal(t, existing, noBase.ResolvePDF(types.Item{LocalPDFFilename: "doc.pdf"}))
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "artigo_ia.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o644))

	items := []types.Item{
		{
			ItemType:          types.ItemJournalArticle,
			Title:             "O impacto da IA <no> direito & processo",
			Authors:           []types.AuthorRef{{FirstName: "Ana", LastName: "Costa"}},
			LocalDownloadPath: pdf,
		},
		{ItemType: types.ItemWebpage, Title: "Guia", URL: "https://example.org/?a=1&b=2"},
	}

	var buf bytes.Buffer
	e := &Exporter{Indent: 4}
	require.NoError(t, e.Export(items, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n    {\n        \"itemType\": \"journalArticle\""), out)
	assert.Contains(t, out, "<no> direito & processo", "HTML characters are not escaped")
	assert.Contains(t, out, "https://example.org/?a=1&b=2")

	var decoded []Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	require.Len(t, decoded[0].Attachments, 1)
	assert.Equal(t, pdf, decoded[0].Attachments[0].Path)
	assert.Empty(t, decoded[1].Attachments)

	buf.Reset()
	compact := &Exporter{}
	require.NoError(t, compact.Export(items[1:], &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	assert.ErrorIs(t, e.Export(nil, &buf), ErrNoItems)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "zotero.json")
	e := &Exporter{Indent: 2}

	assert.ErrorIs(t, e.WriteFile(nil, path), ErrNoItems)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing written for an empty export")

	require.NoError(t, e.WriteFile([]types.Item{{Title: "A"}}, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"itemType\": \"document\"")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
