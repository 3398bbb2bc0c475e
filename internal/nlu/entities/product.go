// internal/nlu/entities/product.go
package entities

import (
	"sort"
	"strings"

	"commerce-nlu/internal/nlu/fuzzy"
)

const defaultCurrency = "₹"

var (
	addFiller = wordSet(
		"add", "new", "product", "products", "item", "items", "insert", "create",
		"a", "an", "the", "please", "name", "called", "named", "with", "and", "of",
		"जोड़ो", "जोड़ें", "जोड़िए", "जोड़", "दो", "नया", "नई", "नए", "सामान", "माल",
		"प्रोडक्ट", "ऐड", "करो", "करें", "का", "की", "के", "नाम", "कृपया", "में",
	)

	priceWords = wordSet(
		"price", "rate", "mrp", "cost", "rs", "rs.", "inr", "rupees", "rupee", "₹", "$",
		"दाम", "कीमत", "मूल्य", "रेट", "रुपये", "रुपए", "रु", "रु.",
	)

	quantityWords = wordSet("stock", "qty", "quantity", "units", "मात्रा", "स्टॉक")

	unitAliases = map[string]string{
		"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg", "किलो": "kg",
		"g": "g", "gm": "g", "gms": "g", "gram": "g", "grams": "g", "ग्राम": "g",
		"l": "l", "ltr": "l", "litre": "l", "litres": "l", "liter": "l", "liters": "l", "लीटर": "l",
		"ml": "ml",
		"pc": "pcs", "pcs": "pcs", "piece": "pcs", "pieces": "pcs", "पीस": "pcs",
		"packet": "packet", "packets": "packet", "pkt": "packet", "पैकेट": "packet",
		"dozen": "dozen", "दर्जन": "dozen",
		"box": "box", "boxes": "box", "डिब्बा": "box", "डिब्बे": "box",
		"bottle": "bottle", "bottles": "bottle", "बोतल": "bottle",
	}

	pricePhrase = mustCompile(`(?i)(?:\b(?:price|rate|mrp|cost)\b|दाम|कीमत|मूल्य|रेट)\s*(?:is\s+|of\s+)?[:=]?\s*(₹|\$|rs\.?|inr|रु\.?)?\s*(\d+(?:\.\d+)?)`)
	stockPhrase = mustCompile(`(?i)(?:\b(?:stock|qty|quantity)\b|मात्रा|स्टॉक)\s*(?:is\s+|of\s+)?[:=]?\s*(-?\d+(?:\.\d+)?)(?:\s*(` + unitAlternation() + `)(?:[^\p{L}\p{M}]|$))?`)
)

func unitAlternation() string {
	names := make([]string, 0, len(unitAliases))
	for name := range unitAliases {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}

func unitOf(word string) (string, bool) {
	u, ok := unitAliases[strings.TrimSuffix(word, ".")]
	return u, ok
}

// ProductExtractor pulls name, price and quantity out of add-product
// requests.
type ProductExtractor struct {
	matcher     *fuzzy.Matcher
	defaultUnit string
}

func NewProductExtractor(m *fuzzy.Matcher, defaultUnit string) *ProductExtractor {
	if defaultUnit == "" {
		defaultUnit = "kg"
	}
	return &ProductExtractor{matcher: m, defaultUnit: defaultUnit}
}

// Extract tries the comma-delimited form, then the keyworded form, then a
// bare "name number number" form. A bare name with no attributes is an
// incomplete request and yields nil.
func (p *ProductExtractor) Extract(in Input) *AddProductEntities {
	text := in.Normalized
	if text == "" {
		text = in.Raw
	}

	for _, try := range []func(string) *AddProductEntities{p.delimited, p.keyworded, p.bare} {
		if e := try(text); e != nil {
			return e
		}
	}
	return nil
}

func (p *ProductExtractor) delimited(text string) *AddProductEntities {
	var segments []string
	for _, seg := range strings.Split(text, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return nil
	}

	var a attributes
	var name []string
	for i, seg := range segments {
		words := p.scan(tokens(seg), &a)
		if i == 0 {
			name = words
		}
	}
	return p.build(strings.Join(name, " "), &a)
}

func (p *ProductExtractor) keyworded(text string) *AddProductEntities {
	priceLoc := pricePhrase.FindStringSubmatchIndex(text)
	stockLoc := stockPhrase.FindStringSubmatchIndex(text)
	if priceLoc == nil && stockLoc == nil {
		return nil
	}

	var a attributes
	first, last := len(text), 0
	if priceLoc != nil {
		value, _ := parseFloat(text[priceLoc[4]:priceLoc[5]])
		currency := defaultCurrency
		if priceLoc[2] >= 0 && text[priceLoc[2]:priceLoc[3]] == "$" {
			currency = "$"
		}
		a.price = &Price{Value: value, Currency: currency}
		first, last = min(first, priceLoc[0]), max(last, priceLoc[1])
	}
	if stockLoc != nil {
		value, _ := parseInt(text[stockLoc[2]:stockLoc[3]])
		unit := p.defaultUnit
		if stockLoc[4] >= 0 {
			unit, _ = unitOf(strings.ToLower(text[stockLoc[4]:stockLoc[5]]))
		}
		a.quantity = &Quantity{Value: value, Unit: unit}
		first, last = min(first, stockLoc[0]), max(last, stockLoc[1])
	}

	name := cleanName(text[:first], addFiller)
	if name == "" {
		name = cleanName(text[last:], addFiller)
	}
	return p.build(name, &a)
}

func (p *ProductExtractor) bare(text string) *AddProductEntities {
	var a attributes
	words := p.scan(tokens(text), &a)
	return p.build(strings.Join(words, " "), &a)
}

type label int

const (
	labelNone label = iota
	labelPrice
	labelQuantity
)

type attributes struct {
	price    *Price
	quantity *Quantity
	loose    []string
}

// scan walks words, recording labelled and unlabelled numbers in a, and
// returns the first contiguous run of name words.
func (p *ProductExtractor) scan(words []string, a *attributes) []string {
	var name []string
	nameDone := false
	pending := labelNone

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch {
		case has(priceWords, w):
			pending = labelPrice
			nameDone = nameDone || len(name) > 0
			continue
		case has(quantityWords, w):
			pending = labelQuantity
			nameDone = nameDone || len(name) > 0
			continue
		}

		currency := ""
		for _, sign := range []string{"₹", "$", "rs."} {
			if strings.HasPrefix(w, sign) && len(w) > len(sign) {
				currency, w = sign, strings.TrimPrefix(w, sign)
				break
			}
		}

		loc := numberPattern.FindStringIndex(w)
		if loc == nil || loc[0] != 0 {
			if _, isUnit := unitOf(w); isUnit {
				nameDone = nameDone || len(name) > 0
				continue
			}
			// fillers inside a name ("सरसों का तेल") are kept; cleanName
			// trims them from the ends later
			if has(addFiller, w) && len(name) == 0 {
				continue
			}
			if !nameDone && hasLetter(w) {
				name = append(name, strings.Trim(w, `.'"`))
			}
			continue
		}
		nameDone = nameDone || len(name) > 0

		number, suffix := w[:loc[1]], w[loc[1]:]
		kind := pending
		unit := ""
		if u, ok := unitOf(suffix); ok {
			kind, unit = labelQuantity, u
		} else if has(priceWords, suffix) {
			kind = labelPrice
		} else if i+1 < len(words) {
			if u, ok := unitOf(words[i+1]); ok {
				kind, unit = labelQuantity, u
				i++
			} else if has(priceWords, words[i+1]) && pending == labelNone {
				kind = labelPrice
				i++
			}
		}
		if currency != "" {
			kind = labelPrice
		}
		pending = labelNone

		switch kind {
		case labelPrice:
			if a.price == nil {
				v, _ := parseFloat(number)
				if currency != "$" {
					currency = defaultCurrency
				}
				a.price = &Price{Value: v, Currency: currency}
			}
		case labelQuantity:
			if a.quantity == nil {
				v, _ := parseInt(number)
				if unit == "" {
					unit = p.defaultUnit
				}
				a.quantity = &Quantity{Value: v, Unit: unit}
			}
		default:
			a.loose = append(a.loose, number)
		}
	}
	return name
}

func (p *ProductExtractor) build(rawName string, a *attributes) *AddProductEntities {
	for _, n := range a.loose {
		switch {
		case a.price == nil:
			v, _ := parseFloat(n)
			a.price = &Price{Value: v, Currency: defaultCurrency}
		case a.quantity == nil:
			v, _ := parseInt(n)
			a.quantity = &Quantity{Value: v, Unit: p.defaultUnit}
		}
	}

	name := cleanName(rawName, addFiller)
	if name == "" || (a.price == nil && a.quantity == nil) {
		return nil
	}
	standardized, confidence := p.matcher.Standardize(name)
	return &AddProductEntities{
		Product:  ProductMatch{Name: name, StandardizedName: standardized, Confidence: confidence},
		Price:    a.price,
		Quantity: a.quantity,
	}
}
