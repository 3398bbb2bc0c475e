// internal/nlu/entities/set.go
package entities

import (
	"time"

	"commerce-nlu/internal/nlu/fuzzy"
	"commerce-nlu/internal/nlu/intent"
	"commerce-nlu/internal/nlu/lexicon"
)

type Options struct {
	SearchMinScore   float64
	DefaultThreshold int
	DefaultUnit      string
	Now              func() time.Time
}

// Set routes an intent to the extractor that understands it.
type Set struct {
	Product   *ProductExtractor
	EditStock *EditStockExtractor
	DateRange *DateRangeExtractor
	Threshold *ThresholdExtractor
	Search    *SearchExtractor
}

func NewSet(lex *lexicon.Lexicon, m *fuzzy.Matcher, opts Options) *Set {
	return &Set{
		Product:   NewProductExtractor(m, opts.DefaultUnit),
		EditStock: NewEditStockExtractor(m),
		DateRange: NewDateRangeExtractor(opts.Now),
		Threshold: NewThresholdExtractor(opts.DefaultThreshold),
		Search:    NewSearchExtractor(lex, m, opts.SearchMinScore),
	}
}

// Extract returns nil for intents that carry no entities. A typed nil
// from an extractor is flattened to a nil interface.
func (s *Set) Extract(i intent.Intent, in Input) Entities {
	switch i {
	case intent.AddProduct:
		if e := s.Product.Extract(in); e != nil {
			return e
		}
	case intent.EditStock:
		if e := s.EditStock.Extract(in); e != nil {
			return e
		}
	case intent.GetOrders, intent.GetReport, intent.GetTopProducts:
		return s.DateRange.Extract(in)
	case intent.GetLowStock:
		return s.Threshold.Extract(in)
	case intent.SearchProduct:
		if e := s.Search.Extract(in); e != nil {
			return e
		}
	}
	return nil
}
