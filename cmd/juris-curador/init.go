// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and create the working directories",
	Long: `Init writes juris-curador.yaml with every setting at its default value and
creates the download, annotated PDF, Zotero export, and log directories named
by the active configuration. An existing config file is kept unless --force
is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("path", config.FileName+".yaml", "where to write the config file")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if err := config.WriteTemplate(path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	if err := config.EnsureDirectories(cfg); err != nil {
		return err
	}
	for _, dir := range cfg.Directories.All() {
		fmt.Fprintln(cmd.OutOrStdout(), "  ", dir)
	}
	return nil
}
