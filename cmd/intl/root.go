package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl/pkg/i18n"
	"github.com/dmitrymomot/intl/pkg/logger"
)

// Set at build time with -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	GitCommit = "none"
)

// app carries the state shared by every subcommand once the persistent
// flags and the environment have been read.
type app struct {
	envFile string
	dir     string
	sources []string

	cfg Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logger.NewNope()}

	root := &cobra.Command{
		Use:   "intl",
		Short: "Validate, render and serve ICU message catalogs",
		Long: `intl works with message catalogs stored as JSON/YAML files, in Redis,
in PostgreSQL or in S3-compatible object storage.

Sources (INTL_SOURCES or --sources):
  fs        - {locale}.json or {locale}/{namespace}.json under INTL_MESSAGES_DIR
  redis     - one JSON tree per locale under INTL_REDIS_PREFIX
  postgres  - rows of the INTL_POSTGRES_TABLE table
  s3        - catalog files below INTL_S3_PREFIX in INTL_S3_BUCKET`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "read environment variables from this file (default: .env when present)")
	flags.StringVar(&a.dir, "dir", "", "catalog directory for the fs source (overrides INTL_MESSAGES_DIR)")
	flags.StringSliceVar(&a.sources, "sources", nil, "catalog sources in merge order (overrides INTL_SOURCES)")

	root.AddCommand(
		newCheckCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
		newPushCmd(a),
		newMigrateCmd(a),
		newVersionCmd(),
	)
	return root
}

// execute runs the root command and prints the error, if any, to stderr.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}

func (a *app) init(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return errors.Join(errLoadConfig, err)
		}
	} else {
		// A missing .env is fine.
		_ = godotenv.Load()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		cfg.MessagesDir = a.dir
	}
	if cmd.Flags().Changed("sources") {
		cfg.Sources = a.sources
	}
	a.cfg = cfg

	log, err := logger.NewWithSentry(cmd.ErrOrStderr(), cfg.Log,
		i18n.LocaleAttr,
		i18n.RequestCacheAttr,
		requestIDAttr,
	)
	if err != nil {
		return errors.Join(errLoadConfig, err)
	}
	a.log = log
	return nil
}

func requestIDAttr(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// The version needs no environment.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intl %s\n", Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		},
	}
}
