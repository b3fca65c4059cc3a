// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juris-curador/internal/acquire"
	"github.com/pdiddy/juris-curador/internal/library"
	"github.com/pdiddy/juris-curador/pkg/types"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [identifiers...]",
	Short: "Download sources from URLs, DOIs, or arXiv IDs",
	Long: `Acquire resolves source identifiers (arXiv IDs, DOIs, direct PDF URLs, or web
pages linking to PDFs) to PDF files and downloads them into the download
directory. Existing files are never overwritten; a numeric suffix is added
instead. Metadata for each acquired source can be written to a catalog file
or stored in the library.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default from config)")
	acquireCmd.Flags().Duration("delay", -1, "delay between consecutive downloads (default from config)")
	acquireCmd.Flags().String("dir", "", "download directory (default from config)")
	acquireCmd.Flags().String("catalog-out", "", "write acquired items to this YAML catalog")
	acquireCmd.Flags().Bool("library", false, "store acquired items in the library")

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more identifiers (arXiv IDs, DOIs, or URLs)")
	}

	httpCfg := cfg.HTTP
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		httpCfg.Timeout = timeout
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay >= 0 {
		httpCfg.DownloadDelay = delay
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Directories.Download
	}
	catalogOut, _ := cmd.Flags().GetString("catalog-out")
	useLibrary, _ := cmd.Flags().GetBool("library")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	d := acquire.NewDownloader(httpCfg, dir, log)
	result := d.AcquireBatch(cmd.Context(), args, cmd.OutOrStdout())

	if catalogOut != "" && len(result.Items) > 0 {
		if err := writeCatalog(catalogOut, result.Items); err != nil {
			return err
		}
		log.Info().Str("file", catalogOut).Int("items", len(result.Items)).Msg("catalog written")
	}
	if useLibrary && len(result.Items) > 0 {
		_, err := withLibrary(func(s *library.Store) (int, error) {
			for _, it := range result.Items {
				if _, err := s.Put(cmd.Context(), it); err != nil {
					return 0, err
				}
			}
			return len(result.Items), nil
		})
		if err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d source(s) failed acquisition", result.Failed)
	}
	return nil
}

func writeCatalog(path string, items []types.Item) error {
	data, err := yaml.Marshal(map[string][]types.Item{"items": items})
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
