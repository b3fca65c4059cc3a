// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/abnt"
	"github.com/pdiddy/juris-curador/internal/catalog"
	"github.com/pdiddy/juris-curador/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local library database",
	Long: `Library keeps curated items and their located highlights in a SQLite
database at the configured library path. Other commands read it with
--library.`,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <catalog>",
	Short: "Add or update every item of a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		catalog.LogIssues(log, catalog.Audit(items))
		n, err := withLibrary(func(s *library.Store) (int, error) {
			for _, it := range items {
				if _, err := s.Put(cmd.Context(), it); err != nil {
					return 0, err
				}
			}
			return len(items), nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d item(s) in %s\n", n, cfg.Library.Path)
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library items with their citations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := withLibrary(func(s *library.Store) (struct{}, error) {
			items, err := s.List(cmd.Context())
			if err != nil {
				return struct{}{}, err
			}
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", it.ID, it.Type(), abnt.FormatInTextCitation(it, ""))
			}
			return struct{}{}, nil
		})
		return err
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove items and their highlights",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := withLibrary(func(s *library.Store) (struct{}, error) {
			for _, id := range args {
				if err := s.Remove(cmd.Context(), id); err != nil {
					return struct{}{}, err
				}
				log.Info().Str("item", id).Msg("removed")
			}
			return struct{}{}, nil
		})
		return err
	},
}

var librarySetPDFCmd = &cobra.Command{
	Use:   "set-pdf <id> <path>",
	Short: "Record the local PDF of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := withLibrary(func(s *library.Store) (struct{}, error) {
			return struct{}{}, s.SetPDF(cmd.Context(), args[0], args[1])
		})
		return err
	},
}

var libraryBibliographyCmd = &cobra.Command{
	Use:   "bibliography",
	Short: "Print the ABNT reference list of the whole library",
	RunE: func(cmd *cobra.Command, args []string) error {
		noLinks, _ := cmd.Flags().GetBool("no-links")
		text, err := withLibrary(func(s *library.Store) (string, error) {
			items, err := s.List(cmd.Context())
			if err != nil {
				return "", err
			}
			return abnt.GenerateBibliography(items, !noLinks), nil
		})
		if err != nil {
			return err
		}
		if text != "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	},
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the library with highlights as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		_, err := withLibrary(func(s *library.Store) (struct{}, error) {
			return struct{}{}, writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return s.ExportYAML(cmd.Context(), w)
			})
		})
		return err
	},
}

func init() {
	libraryExportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	libraryBibliographyCmd.Flags().Bool("no-links", false, "omit local download links")

	libraryCmd.AddCommand(libraryAddCmd, libraryListCmd, libraryRemoveCmd, librarySetPDFCmd,
		libraryBibliographyCmd, libraryExportCmd)
	rootCmd.AddCommand(libraryCmd)
}
