// internal/nlu/entities/editstock.go
package entities

import (
	"regexp"
	"strings"

	"commerce-nlu/internal/nlu/fuzzy"
	"commerce-nlu/internal/nlu/langid"
)

var (
	editStructured = mustCompile(`(?i)(?:product|item|name|सामान|उत्पाद|प्रोडक्ट)\s*[:=]\s*(.+?)\s*[,;\n]?\s*(?:new\s+)?(?:quantity|qty|stock|मात्रा|स्टॉक)\s*[:=]\s*(-?\d+)`)

	editEnglish = []*regexp.Regexp{
		mustCompile(`(?i)\b(?:update|edit|change|set|modify|adjust)\s+(?:the\s+)?(?:stock|quantity|qty|inventory)\s+(?:of|for)\s+(.+?)\s+(?:to|=|as)\s+(-?\d+)`),
		mustCompile(`(?i)\b(?:update|edit|change|set|modify|adjust)\s+(?:the\s+)?(.+?)\s+(?:stock|quantity|qty)\s+(?:to|=|as)\s+(-?\d+)`),
		mustCompile(`(?i)\b(?:stock|quantity|qty)\s+(?:of|for)\s+(.+?)\s+(?:to|=|is|as)\s+(-?\d+)`),
		mustCompile(`(?i)\b(?:update|set)\s+(.+?)\s+to\s+(-?\d+)`),
	}

	editHindi = []*regexp.Regexp{
		mustCompile(`(.+?)\s+(?:का|की|के)\s+(?:स्टॉक|मात्रा|(?i:stock|quantity))\s+(-?\d+)`),
		mustCompile(`(?:स्टॉक|(?i:stock))\s+(?:अपडेट|(?i:update))\s*:?\s*(.+?)\s+(-?\d+)`),
		mustCompile(`(.+?)\s+(?:स्टॉक|मात्रा|(?i:stock))\s+(-?\d+)\s*(?:करो|करें|कर\s*दो|कर\s*दें)`),
	}

	// a "set the price of X to N" name is a price change, not a stock edit
	editPriceWords = mustCompile(`(?i)\b(?:price|prices|rate|rates|mrp|cost|keemat|kimat)\b|कीमत|दाम`)

	editFiller = wordSet(
		"the", "of", "for", "please", "stock", "product", "item", "now", "my",
		"update", "edit", "change", "set",
		"कृपया", "अब", "मेरे", "मेरा", "मेरी", "का", "की", "के", "स्टॉक", "अपडेट",
	)

	editKeywordOnly = wordSet(
		"update", "edit", "change", "set", "stock", "quantity", "qty", "to",
		"अपडेट", "स्टॉक", "मात्रा", "करो", "करें", "बदलो",
	)
)

// EditStockExtractor finds the product and new stock level in an
// inventory correction. Negative levels are passed through unchanged.
type EditStockExtractor struct {
	matcher *fuzzy.Matcher
}

func NewEditStockExtractor(m *fuzzy.Matcher) *EditStockExtractor {
	return &EditStockExtractor{matcher: m}
}

func (x *EditStockExtractor) Extract(in Input) *EditStockEntities {
	for _, text := range []string{in.Raw, in.Normalized} {
		if e := x.match(text, []*regexp.Regexp{editStructured}); e != nil {
			return e
		}
	}

	patterns := x.patternsFor(in.Profile)
	if e := x.match(in.Normalized, patterns); e != nil {
		return e
	}

	if strings.Contains(strings.TrimSpace(in.Raw), "\n") {
		joined := strings.Join(strings.Fields(in.Raw), " ")
		if e := x.match(joined, patterns); e != nil {
			return e
		}
		return x.scanLines(in.Raw)
	}
	return nil
}

func (x *EditStockExtractor) patternsFor(p langid.Profile) []*regexp.Regexp {
	switch {
	case p.IsMixed && p.Primary == langid.Hindi:
		return append(append([]*regexp.Regexp{}, editHindi...), editEnglish...)
	case p.IsMixed:
		return append(append([]*regexp.Regexp{}, editEnglish...), editHindi...)
	case p.Primary == langid.Hindi:
		return editHindi
	default:
		return editEnglish
	}
}

func (x *EditStockExtractor) match(text string, patterns []*regexp.Regexp) *EditStockEntities {
	if text == "" {
		return nil
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if e := x.build(m[1], m[2]); e != nil {
			return e
		}
	}
	return nil
}

// scanLines handles one-field-per-line messages: the first line with a
// real word is the product, the last number anywhere is the stock.
func (x *EditStockExtractor) scanLines(raw string) *EditStockEntities {
	name, number := "", ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if nums := numberPattern.FindAllString(line, -1); len(nums) > 0 {
			number = nums[len(nums)-1]
		}
		if name != "" {
			continue
		}
		var words []string
		for _, w := range tokens(numberPattern.ReplaceAllString(line, " ")) {
			if !has(editKeywordOnly, w) && hasLetter(w) {
				words = append(words, w)
			}
		}
		name = strings.Join(words, " ")
	}
	if number == "" {
		return nil
	}
	return x.build(name, number)
}

func (x *EditStockExtractor) build(rawName, rawStock string) *EditStockEntities {
	name := cleanName(rawName, editFiller)
	stock, ok := parseInt(rawStock)
	if name == "" || !ok || editPriceWords.MatchString(name) {
		return nil
	}
	standardized, confidence := x.matcher.Standardize(name)
	return &EditStockEntities{
		Product: ProductMatch{Name: name, StandardizedName: standardized, Confidence: confidence},
		Stock:   stock,
	}
}
