// internal/common/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"commerce-nlu/internal/nlu/lexicon"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource reads (canonical_name, variant) rows. A NULL variant
// registers the canonical name alone.
type PostgresSource struct {
	DB    *sql.DB
	Table string
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) (lexicon.ProductDictionary, error) {
	if !tableName.MatchString(s.Table) {
		return nil, fmt.Errorf("invalid table name %q", s.Table)
	}

	query := fmt.Sprintf("SELECT canonical_name, variant FROM %s", s.Table)
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	out := lexicon.ProductDictionary{}
	for rows.Next() {
		var canonical string
		var variant sql.NullString
		if err := rows.Scan(&canonical, &variant); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.Table, err)
		}
		entry := lexicon.ProductDictionary{canonical: nil}
		if variant.Valid {
			entry[canonical] = []string{variant.String}
		}
		out = out.Merge(entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.Table, err)
	}
	return out, nil
}
