// internal/common/catalog/yaml.go
package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"commerce-nlu/internal/nlu/lexicon"
)

// YAMLSource reads an overlay file of the form
//
//	products:
//	  मैदा: [maida, refined flour]
type YAMLSource struct {
	Path string
}

type yamlCatalog struct {
	Products map[string][]string `yaml:"products"`
}

func (s *YAMLSource) Name() string { return "yaml" }

func (s *YAMLSource) Load(_ context.Context) (lexicon.ProductDictionary, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return lexicon.ProductDictionary{}.Merge(doc.Products), nil
}
