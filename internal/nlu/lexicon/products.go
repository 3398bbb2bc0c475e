// internal/nlu/lexicon/products.go
package lexicon

import (
	"sort"
	"strings"
)

// ProductDictionary maps a canonical (Devanagari) product name to its known
// spelling variants: English names, romanized Hindi and alternate scripts.
type ProductDictionary map[string][]string

var builtinProducts = ProductDictionary{
	"चीनी":         {"sugar", "chini", "cheeni", "chinni", "shakkar", "शक्कर"},
	"चावल":         {"rice", "chawal", "chaval", "chawl", "basmati"},
	"आटा":          {"atta", "aata", "flour", "wheat flour"},
	"दाल":          {"dal", "daal", "dhal", "lentils", "lentil"},
	"तेल":          {"tel", "oil", "cooking oil"},
	"नमक":          {"namak", "salt"},
	"दूध":          {"doodh", "dudh", "milk"},
	"चाय":          {"chai", "chay", "chaay", "tea"},
	"घी":           {"ghee", "ghi"},
	"बेसन":         {"besan", "gram flour"},
	"मैदा":         {"maida", "refined flour"},
	"सूजी":         {"suji", "sooji", "semolina", "rava"},
	"हल्दी":        {"haldi", "turmeric"},
	"मिर्च":        {"mirch", "mirchi", "chilli", "chili", "मिर्ची"},
	"जीरा":         {"jeera", "jira", "cumin"},
	"पनीर":         {"paneer", "panir", "cottage cheese"},
	"दही":          {"dahi", "curd", "yogurt"},
	"अंडा":         {"anda", "ande", "egg", "eggs", "अंडे"},
	"साबुन":        {"sabun", "soap"},
	"बिस्कुट":      {"biskut", "biscuit", "biscuits"},
	"प्याज":        {"pyaz", "pyaaz", "onion", "onions"},
	"आलू":          {"aloo", "alu", "potato", "potatoes"},
	"टमाटर":        {"tamatar", "tomato", "tomatoes"},
	"गुड़":         {"gud", "gur", "jaggery"},
	"कॉफी":         {"kofi", "coffee", "कॉफ़ी"},
	"मक्खन":        {"makhan", "makkhan", "butter"},
	"ब्रेड":        {"bread", "double roti"},
	"शैम्पू":       {"shampu", "shampoo"},
	"पोहा":         {"poha", "flattened rice"},
	"सरसों का तेल": {"sarson ka tel", "sarson tel", "mustard oil"},
}

// BuiltinProducts returns a copy of the bundled product dictionary.
func BuiltinProducts() ProductDictionary {
	return builtinProducts.Clone()
}

func (d ProductDictionary) Clone() ProductDictionary {
	out := make(ProductDictionary, len(d))
	for canonical, variants := range d {
		out[canonical] = append([]string(nil), variants...)
	}
	return out
}

// Merge returns a new dictionary holding d plus every entry of other.
// Variants for an existing canonical name are appended without duplicates.
func (d ProductDictionary) Merge(other ProductDictionary) ProductDictionary {
	out := d.Clone()
	for canonical, variants := range other {
		canonical = strings.TrimSpace(canonical)
		if canonical == "" {
			continue
		}
		seen := make(map[string]struct{}, len(out[canonical]))
		for _, v := range out[canonical] {
			seen[strings.ToLower(v)] = struct{}{}
		}
		for _, v := range variants {
			v = strings.TrimSpace(v)
			key := strings.ToLower(v)
			if v == "" || key == strings.ToLower(canonical) {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out[canonical] = append(out[canonical], v)
		}
		if _, ok := out[canonical]; !ok {
			out[canonical] = []string{}
		}
	}
	return out
}

// Canonicals returns the canonical names in a stable order.
func (d ProductDictionary) Canonicals() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len counts canonical names plus variants.
func (d ProductDictionary) Len() int {
	n := 0
	for _, variants := range d {
		n += 1 + len(variants)
	}
	return n
}
