package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl/pkg/db"
	"github.com/dmitrymomot/intl/pkg/messages"
)

func newPushCmd(a *app) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy the catalog to Redis or PostgreSQL",
		Long: `push loads the catalog from the configured sources and replaces the
messages of every locale in each target. PostgreSQL targets are migrated
first.`,
		Example: `  intl push --sources fs --to redis,postgres`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			for _, t := range targets {
				if n := normalizeSource(t); n != sourceRedis && n != sourcePostgres {
					return fmt.Errorf("%w: %q", errUnknownTarget, t)
				}
			}

			catalog, d, err := a.openCatalog(ctx, targets...)
			if err != nil {
				return err
			}
			defer d.Close()

			for _, t := range targets {
				switch normalizeSource(t) {
				case sourceRedis:
					err = a.pushRedis(ctx, d, catalog)
				case sourcePostgres:
					err = a.pushPostgres(ctx, d, catalog)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&targets, "to", []string{sourceRedis}, "targets: redis, postgres")
	return cmd
}

func (a *app) pushRedis(ctx context.Context, d *deps, catalog *messages.Catalog) error {
	store := messages.NewRedisSource(d.redis, messages.WithRedisPrefix(a.cfg.RedisCatalogPrefix))
	for _, locale := range catalog.Locales() {
		tree, _ := catalog.Tree(locale)
		if err := store.Store(ctx, locale, tree); err != nil {
			return fmt.Errorf("push %s to redis: %w", locale, err)
		}
		a.log.InfoContext(ctx, "locale pushed", "target", sourceRedis, "locale", locale, "messages", countMessages(tree))
	}
	return nil
}

func (a *app) pushPostgres(ctx context.Context, d *deps, catalog *messages.Catalog) error {
	if err := db.Migrate(ctx, d.pool, d.dbCfg.MigrationsTable, a.log); err != nil {
		return err
	}
	for _, locale := range catalog.Locales() {
		tree, _ := catalog.Tree(locale)
		entries := flatten(tree)
		if err := db.ReplaceTranslations(ctx, d.pool, a.cfg.PostgresTable, locale, entries); err != nil {
			return fmt.Errorf("push %s to postgres: %w", locale, err)
		}
		a.log.InfoContext(ctx, "locale pushed", "target", sourcePostgres, "locale", locale, "messages", len(entries))
	}
	return nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the translations table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := a.connect(ctx, sourcePostgres)
			if err != nil {
				return err
			}
			defer d.Close()
			return db.Migrate(ctx, d.pool, d.dbCfg.MigrationsTable, a.log)
		},
	}
}

// flatten maps the dotted key of every message in tree to its source.
func flatten(tree *messages.Node) map[string]string {
	entries := map[string]string{}
	_ = tree.Walk(messages.DefaultDelimiter, func(key, msg string) error {
		entries[key] = msg
		return nil
	})
	return entries
}

func countMessages(tree *messages.Node) int {
	return len(flatten(tree))
}
