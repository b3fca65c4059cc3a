// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the juris-curador CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/juris-curador/internal/config"
	"github.com/pdiddy/juris-curador/internal/logging"
	"github.com/pdiddy/juris-curador/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the configuration loaded before any subcommand runs.
	cfg types.Config

	appLog *logging.Logger
	log    zerolog.Logger
)

// rootCmd is the base command for the juris-curador CLI.
var rootCmd = &cobra.Command{
	Use:   "juris-curador",
	Short: "Curate legal and academic sources and cite them in ABNT style",
	Long: `juris-curador acquires legal and academic sources, keeps their metadata in a
catalog or a local library, finds quoted passages in the downloaded PDFs, and
formats in-text citations and reference lists following ABNT NBR 6023 and
NBR 10520. Catalogs can be exported for import into Zotero.

Settings come from juris-curador.yaml (see "juris-curador init"), overridden
by JURIS_CURADOR_* environment variables. A .env file in the working
directory is loaded first.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		appLog.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./juris-curador.yaml or ~/.config/juris-curador/juris-curador.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "override the configured log level")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		v.Set("logging.level", lvl)
	}
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	appLog, err = logging.New(cfg.Logging, cfg.Directories.Logs, os.Stderr)
	if err != nil {
		return err
	}
	log = appLog.Logger
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
