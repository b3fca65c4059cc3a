// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/abnt"
)

var bibliographyCmd = &cobra.Command{
	Use:     "bibliography",
	Aliases: []string{"bib"},
	Short:   "Print the ABNT reference list for catalog or library items",
	Long: `Bibliography formats every selected item as an ABNT reference-list entry and
prints the entries sorted by entry point, year, and title. Entries carry a
link to the local PDF unless --no-links is given.`,
	RunE: runBibliography,
}

func init() {
	addSourceFlags(bibliographyCmd)
	bibliographyCmd.Flags().String("format", "markdown", "output format: markdown, plain, or html")
	bibliographyCmd.Flags().Bool("no-links", false, "omit local download links")
	bibliographyCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(bibliographyCmd)
}

func runBibliography(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	render, sep, err := renderer(format)
	if err != nil {
		return err
	}
	noLinks, _ := cmd.Flags().GetBool("no-links")
	output, _ := cmd.Flags().GetString("output")

	items, err := loadItems(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	entries := abnt.Bibliography(items, !noLinks)
	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = render(e)
	}
	text := strings.Join(rendered, sep)
	if text != "" {
		text += "\n"
	}

	err = writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
	if err != nil {
		return err
	}
	if output != "" {
		log.Info().Str("file", output).Int("entries", len(entries)).Msg("bibliography written")
	}
	return nil
}

// renderer returns the entry renderer and separator for an output format.
func renderer(format string) (func(abnt.Text) string, string, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return abnt.Text.Markdown, "\n\n", nil
	case "plain", "text", "txt":
		return abnt.Text.Plain, "\n", nil
	case "html":
		return func(t abnt.Text) string { return "<p>" + t.HTML() + "</p>" }, "\n", nil
	default:
		return nil, "", fmt.Errorf("unknown format %q (want markdown, plain, or html)", format)
	}
}
