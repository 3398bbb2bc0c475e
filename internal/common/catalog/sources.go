// internal/common/catalog/sources.go
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"commerce-nlu/internal/common/config"
)

// SourcesFromConfig builds the configured sources in order. db and es may
// be nil when the matching source is not listed.
func SourcesFromConfig(cfg config.CatalogConfig, db *sql.DB, es *elasticsearch.Client) ([]Source, error) {
	sources := make([]Source, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		switch name {
		case "yaml":
			sources = append(sources, &YAMLSource{Path: cfg.YAMLPath})
		case "postgres":
			if db == nil {
				return nil, fmt.Errorf("catalog source postgres needs a database connection")
			}
			sources = append(sources, &PostgresSource{DB: db, Table: cfg.PostgresTable})
		case "elasticsearch":
			if es == nil {
				return nil, fmt.Errorf("catalog source elasticsearch needs a client")
			}
			sources = append(sources, &ElasticsearchSource{Client: es, Index: cfg.ESIndex})
		default:
			return nil, fmt.Errorf("unknown catalog source %q", name)
		}
	}
	return sources, nil
}
