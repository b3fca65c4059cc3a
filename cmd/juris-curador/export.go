// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/zotero"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export catalog or library items as Zotero JSON",
	Long: `Export converts the selected items to Zotero's JSON import format. Items with
a PDF on disk get a linked-file attachment; missing PDFs are reported and
skipped. The file is written to the Zotero export directory unless --output
is given.`,
	RunE: runExport,
}

func init() {
	addSourceFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "output file (default <zotero_exports>/zotero_export.json)")
	exportCmd.Flags().String("pdf-base", "", "base directory for relative PDF filenames (default: download directory)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	items, err := loadItems(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if err := os.MkdirAll(cfg.Directories.ZoteroExports, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Directories.ZoteroExports, err)
		}
		output = filepath.Join(cfg.Directories.ZoteroExports, "zotero_export.json")
	}
	pdfBase, _ := cmd.Flags().GetString("pdf-base")
	if pdfBase == "" {
		pdfBase = cfg.Directories.Download
	}

	e := &zotero.Exporter{
		Indent:  cfg.Output.ZoteroJSONIndent,
		PDFBase: pdfBase,
		Log:     log,
	}
	if err := e.WriteFile(items, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d item(s) to %s\n", len(items), output)
	return nil
}
