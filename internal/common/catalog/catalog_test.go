package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-nlu/internal/common/config"
	apperrors "commerce-nlu/internal/common/errors"
	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/nlu/lexicon"
)

// ==========================
// Test Helper Functions
// ==========================

type staticSource struct {
	name string
	dict lexicon.ProductDictionary
	err  error
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Load(context.Context) (lexicon.ProductDictionary, error) {
	return s.dict, s.err
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func esServer(t *testing.T, docs []productDoc, status int) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
			return
		}
		hits := make([]map[string]interface{}, len(docs))
		for i, d := range docs {
			hits[i] = map[string]interface{}{"_source": d, "sort": []interface{}{d.Canonical}}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"hits": hits},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

// ==========================
// Source Tests
// ==========================

func TestYAMLSource(t *testing.T) {
	path := writeYAML(t, "products:\n  मैदा: [maida, refined flour]\n  चीनी: [sugar cubes]\n")

	dict, err := (&YAMLSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"maida", "refined flour"}, dict["मैदा"])
	assert.Equal(t, []string{"sugar cubes"}, dict["चीनी"])

	_, err = (&YAMLSource{Path: writeYAML(t, "products: [")}).Load(context.Background())
	assert.Error(t, err)

	_, err = (&YAMLSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}).Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"canonical_name", "variant"}).
		AddRow("मैदा", "maida").
		AddRow("मैदा", "refined flour").
		AddRow("बेसन", nil)
	mock.ExpectQuery("SELECT canonical_name, variant FROM product_aliases").WillReturnRows(rows)

	dict, err := (&PostgresSource{DB: db, Table: "product_aliases"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"maida", "refined flour"}, dict["मैदा"])
	assert.Contains(t, dict, "बेसन")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = (&PostgresSource{DB: db, Table: "products; DROP TABLE x"}).Load(context.Background())
	assert.Error(t, err)

	mock.ExpectQuery("SELECT canonical_name, variant FROM catalog.aliases").
		WillReturnError(errors.New("relation does not exist"))
	_, err = (&PostgresSource{DB: db, Table: "catalog.aliases"}).Load(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestElasticsearchSource(t *testing.T) {
	client := esServer(t, []productDoc{
		{Canonical: "मैदा", Variants: []string{"maida"}},
		{Canonical: "बेसन", Variants: []string{"besan", "gram flour"}},
		{Canonical: ""},
	}, http.StatusOK)

	dict, err := (&ElasticsearchSource{Client: client, Index: "products"}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, dict, 2)
	assert.Equal(t, []string{"besan", "gram flour"}, dict["बेसन"])
}

func TestElasticsearchSource_IndexError(t *testing.T) {
	client := esServer(t, nil, http.StatusNotFound)

	_, err := (&ElasticsearchSource{Client: client, Index: "products"}).Load(context.Background())
	assert.Error(t, err)
}

// ==========================
// Loader Tests
// ==========================

func TestLoader_MergesInOrder(t *testing.T) {
	l := NewLoader([]Source{
		&staticSource{name: "first", dict: lexicon.ProductDictionary{"मैदा": {"maida"}}},
		&staticSource{name: "second", dict: lexicon.ProductDictionary{"मैदा": {"refined flour", "Maida"}}},
	}, false, time.Second, logger.NewTestLogger(t))

	dict, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"maida", "refined flour"}, dict["मैदा"])
}

func TestLoader_SkipsFailingSource(t *testing.T) {
	l := NewLoader([]Source{
		&staticSource{name: "postgres", err: errors.New("connection refused")},
		&staticSource{name: "yaml", dict: lexicon.ProductDictionary{"बेसन": {"besan"}}},
	}, false, time.Second, logger.NewTestLogger(t))

	lex, err := l.Lexicon(context.Background())
	require.NoError(t, err)
	assert.Contains(t, lex.Products, "बेसन")
	assert.Contains(t, lex.Products, "चीनी", "builtin products are kept")
}

func TestLoader_StrictFails(t *testing.T) {
	l := NewLoader([]Source{
		&staticSource{name: "postgres", err: errors.New("connection refused")},
	}, true, time.Second, logger.NewTestLogger(t))

	_, err := l.Load(context.Background())
	require.Error(t, err)

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeCatalogLoadFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "postgres", stdErr.Metadata["source"])
}

func TestSourcesFromConfig(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sources, err := SourcesFromConfig(config.CatalogConfig{
		Sources:       []string{"yaml", "postgres"},
		YAMLPath:      "configs/products.yaml",
		PostgresTable: "product_aliases",
	}, db, nil)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "yaml", sources[0].Name())
	assert.Equal(t, "postgres", sources[1].Name())

	_, err = SourcesFromConfig(config.CatalogConfig{Sources: []string{"elasticsearch"}}, nil, nil)
	assert.Error(t, err)

	_, err = SourcesFromConfig(config.CatalogConfig{Sources: []string{"csv"}}, nil, nil)
	assert.Error(t, err)
}
