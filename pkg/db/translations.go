package db

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
)

// DefaultTranslationsTable is the table created by the embedded migrations.
const DefaultTranslationsTable = "translations"

// ReplaceTranslations atomically replaces every message of locale with
// entries (dotted key -> message).
func ReplaceTranslations(ctx context.Context, db TxBeginner, table, locale string, entries map[string]string) error {
	if locale == "" {
		return ErrEmptyLocale
	}
	if table == "" {
		table = DefaultTranslationsTable
	}
	ident := pgx.Identifier{table}.Sanitize()

	return WithTx(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE locale = $1`, ident), locale); err != nil {
			return fmt.Errorf("delete %s messages: %w", locale, err)
		}

		insert := fmt.Sprintf(`INSERT INTO %s (locale, key, message) VALUES ($1, $2, $3)`, ident)
		batch := &pgx.Batch{}
		for _, key := range slices.Sorted(maps.Keys(entries)) {
			batch.Queue(insert, locale, key, entries[key])
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert %s messages: %w", locale, err)
		}
		return nil
	})
}
