// internal/common/catalog/loader.go
package catalog

import (
	"context"
	"time"

	"commerce-nlu/internal/common/errors"
	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/nlu/lexicon"
)

// Source supplies product names that extend the bundled dictionary.
type Source interface {
	Name() string
	Load(ctx context.Context) (lexicon.ProductDictionary, error)
}

// Loader merges its sources in order. The result holds only the extra
// entries; lexicon.New adds them to the builtin products.
type Loader struct {
	sources []Source
	strict  bool
	timeout time.Duration
	logger  logger.Logger
}

func NewLoader(sources []Source, strict bool, timeout time.Duration, log logger.Logger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Loader{
		sources: sources,
		strict:  strict,
		timeout: timeout,
		logger:  log.With(map[string]interface{}{"component": "catalog"}),
	}
}

// Load reads every source once. A failing source is skipped unless the
// loader is strict, in which case its error is returned as a
// CATALOG_LOAD_FAILED StandardError.
func (l *Loader) Load(ctx context.Context) (lexicon.ProductDictionary, error) {
	merged := lexicon.ProductDictionary{}

	for _, src := range l.sources {
		srcCtx, cancel := context.WithTimeout(ctx, l.timeout)
		dict, err := src.Load(srcCtx)
		cancel()

		if err != nil {
			if l.strict {
				return nil, errors.NewCatalogLoadError(src.Name(), err)
			}
			l.logger.Warn("skipping catalog source", map[string]interface{}{
				"source": src.Name(),
				"error":  err.Error(),
			})
			continue
		}

		merged = merged.Merge(dict)
		l.logger.Info("catalog source loaded", map[string]interface{}{
			"source":   src.Name(),
			"products": len(dict),
			"entries":  dict.Len(),
		})
	}
	return merged, nil
}

// Lexicon loads every source and builds the parser lexicon from the result.
func (l *Loader) Lexicon(ctx context.Context) (*lexicon.Lexicon, error) {
	extra, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return lexicon.New(extra), nil
}
