// Package db connects to PostgreSQL and owns the schema of the translations
// table read by messages.PostgresSource.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	err = db.ReplaceTranslations(ctx, pool, "", "en", map[string]string{
//		"About.title": "About us",
//	})
//
// Connect retries with a linearly growing delay. [WithTx] commits when the
// callback succeeds and rolls back on error or panic.
package db
