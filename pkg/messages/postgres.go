package messages

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DefaultTable is the table read by PostgresSource. Its schema is created
// by the migrations shipped with pkg/db.
const DefaultTable = "translations"

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads flat (locale, key, message) rows and rebuilds the
// nested trees from the dotted keys.
type PostgresSource struct {
	db    Querier
	table string
}

// NewPostgresSource creates a source over the given table name.
// An empty table name selects DefaultTable.
func NewPostgresSource(db Querier, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{db: db, table: table}
}

type translationRow struct {
	Locale  string `db:"locale"`
	Key     string `db:"key"`
	Message string `db:"message"`
}

// Load reads every row of the table.
func (s *PostgresSource) Load(ctx context.Context) (map[string]*Node, error) {
	query := fmt.Sprintf(`SELECT locale, key, message FROM %s ORDER BY locale, key`,
		pgx.Identifier{s.table}.Sanitize())

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[translationRow])
	if err != nil {
		return nil, fmt.Errorf("scan translations: %w", err)
	}

	flat := map[string]map[string]string{}
	for _, r := range records {
		if r.Locale == "" {
			return nil, ErrEmptyLocale
		}
		if flat[r.Locale] == nil {
			flat[r.Locale] = map[string]string{}
		}
		flat[r.Locale][r.Key] = r.Message
	}

	trees := make(map[string]*Node, len(flat))
	for locale, entries := range flat {
		tree, err := FromFlat(entries, DefaultDelimiter)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		trees[locale] = tree
	}
	return trees, nil
}
