// internal/common/catalog/elasticsearch.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"commerce-nlu/internal/nlu/lexicon"
)

const esPageSize = 1000

// ElasticsearchSource reads documents of the form
// {"canonical": "चीनी", "variants": ["sugar", "cheeni"]}.
type ElasticsearchSource struct {
	Client *elasticsearch.Client
	Index  string
}

type productDoc struct {
	Canonical string   `json:"canonical"`
	Variants  []string `json:"variants"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source productDoc    `json:"_source"`
			Sort   []interface{} `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) Name() string { return "elasticsearch" }

// Load pages through the index with search_after so catalogs larger than
// one page are read completely.
func (s *ElasticsearchSource) Load(ctx context.Context) (lexicon.ProductDictionary, error) {
	out := lexicon.ProductDictionary{}
	var after []interface{}

	for {
		body := map[string]interface{}{
			"size":    esPageSize,
			"query":   map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort":    []interface{}{map[string]interface{}{"canonical.keyword": "asc"}},
			"_source": []string{"canonical", "variants"},
		}
		if after != nil {
			body["search_after"] = after
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		req := esapi.SearchRequest{
			Index: []string{s.Index},
			Body:  strings.NewReader(string(payload)),
		}
		res, err := req.Do(ctx, s.Client)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", s.Index, err)
		}

		var page searchResponse
		decodeErr := func() error {
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("search %s failed: %s", s.Index, res.String())
			}
			return json.NewDecoder(res.Body).Decode(&page)
		}()
		if decodeErr != nil {
			return nil, decodeErr
		}

		for _, hit := range page.Hits.Hits {
			if hit.Source.Canonical == "" {
				continue
			}
			out = out.Merge(lexicon.ProductDictionary{hit.Source.Canonical: hit.Source.Variants})
		}
		if len(page.Hits.Hits) < esPageSize {
			return out, nil
		}
		after = page.Hits.Hits[len(page.Hits.Hits)-1].Sort
	}
}
