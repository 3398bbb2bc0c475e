// internal/nlu/entities/search.go
package entities

import (
	"sort"
	"strings"

	subseq "github.com/sahilm/fuzzy"

	"commerce-nlu/internal/nlu/fuzzy"
	"commerce-nlu/internal/nlu/lexicon"
)

// DefaultSearchMinScore is lower than the inventory floor: a search can
// afford to be generous with typos.
const DefaultSearchMinScore = 0.65

// SearchExtractor isolates the product a shopper is looking for.
type SearchExtractor struct {
	lex      *lexicon.Lexicon
	matcher  *fuzzy.Matcher
	minScore float64

	latin  []string
	owners map[string]string
}

func NewSearchExtractor(lex *lexicon.Lexicon, m *fuzzy.Matcher, minScore float64) *SearchExtractor {
	if minScore <= 0 {
		minScore = DefaultSearchMinScore
	}
	x := &SearchExtractor{lex: lex, matcher: m, minScore: minScore, owners: map[string]string{}}
	for canonical, variants := range lex.Products {
		for _, v := range variants {
			if isDevanagariOnly(v) {
				continue
			}
			key := strings.ToLower(v)
			if _, dup := x.owners[key]; !dup {
				x.owners[key] = canonical
				x.latin = append(x.latin, key)
			}
		}
	}
	sort.Strings(x.latin)
	return x
}

func (x *SearchExtractor) Extract(in Input) *SearchEntities {
	query := x.query(in.Normalized)
	if query == "" {
		query = x.query(in.Raw)
	}
	if query == "" {
		return nil
	}

	e := &SearchEntities{Product: ProductMatch{Name: query, StandardizedName: query}}
	if isDevanagariOnly(query) {
		e.IsHindiOnly = true
		e.EnglishName = x.gloss(query)
	}

	if m := x.matcher.Match(query, x.minScore); m.Confidence > 0 {
		e.Product.StandardizedName = m.Standardized
		e.Product.Confidence = m.Confidence
		return e
	}
	if canonical, ok := x.prefixMatch(query); ok {
		e.Product.StandardizedName = canonical
		e.Product.Confidence = x.minScore
	}
	return e
}

// query drops stopwords wherever they appear.
func (x *SearchExtractor) query(text string) string {
	var kept []string
	for _, w := range tokens(text) {
		w = strings.Trim(w, `.'"?!`)
		if w == "" || x.lex.IsStopword(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func (x *SearchExtractor) gloss(query string) string {
	if g, ok := x.lex.Gloss(query); ok {
		return g
	}
	words := strings.Fields(query)
	out := make([]string, 0, len(words))
	for _, w := range words {
		g, ok := x.lex.Gloss(w)
		if !ok {
			return ""
		}
		out = append(out, g)
	}
	return strings.Join(out, " ")
}

// prefixMatch catches truncated Latin queries ("basm") that edit distance
// scores too low. Only subsequences anchored at the first letter count.
func (x *SearchExtractor) prefixMatch(query string) (string, bool) {
	if len(query) < 3 || !isASCII(query) {
		return "", false
	}
	for _, m := range subseq.Find(query, x.latin) {
		if len(m.MatchedIndexes) > 0 && m.MatchedIndexes[0] == 0 {
			return x.owners[m.Str], true
		}
	}
	return "", false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
