// internal/nlu/normalize/structured.go
package normalize

import (
	"regexp"
	"strings"
)

type fieldKind int

const (
	fieldUnknown fieldKind = iota
	fieldProduct
	fieldPrice
	fieldQuantity
	fieldUnit
)

var fieldKeys = map[string]fieldKind{
	"product": fieldProduct, "product name": fieldProduct, "item": fieldProduct,
	"name": fieldProduct, "उत्पाद": fieldProduct, "सामान": fieldProduct,
	"प्रोडक्ट": fieldProduct, "नाम": fieldProduct,

	"price": fieldPrice, "rate": fieldPrice, "mrp": fieldPrice, "cost": fieldPrice,
	"दाम": fieldPrice, "कीमत": fieldPrice, "मूल्य": fieldPrice, "रेट": fieldPrice,

	"quantity": fieldQuantity, "qty": fieldQuantity, "stock": fieldQuantity,
	"new stock": fieldQuantity, "मात्रा": fieldQuantity, "स्टॉक": fieldQuantity,

	"unit": fieldUnit, "इकाई": fieldUnit,
}

var (
	keyValueLine = regexp.MustCompile(`^\s*([\p{L}\p{M} ]+?)\s*[:=]\s*(.+?)\s*$`)
	numericValue = regexp.MustCompile(`^-?\d+(?:\.\d+)?`)
)

// rewriteStructured turns "key: value" layouts into the phrase form the
// intent rules understand. It reports false when text is not such a layout.
func rewriteStructured(text string) (string, bool) {
	segments := strings.Split(strings.TrimSpace(text), "\n")
	if len(segments) == 1 {
		segments = strings.Split(segments[0], ",")
	}
	if len(segments) < 2 {
		return text, false
	}

	fields := make(map[fieldKind]string)
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		m := keyValueLine.FindStringSubmatch(seg)
		if m == nil {
			// a leading command line such as "Add product" is tolerated
			if i == 0 && !strings.ContainsAny(seg, ":=") {
				continue
			}
			return text, false
		}
		kind := fieldKeys[strings.ToLower(strings.Join(strings.Fields(m[1]), " "))]
		if kind == fieldUnknown {
			return text, false
		}
		fields[kind] = m[2]
	}

	product, qty := fields[fieldProduct], fields[fieldQuantity]
	if product == "" || !numericValue.MatchString(qty) {
		return text, false
	}
	if unit := fields[fieldUnit]; unit != "" {
		qty += " " + unit
	}

	if price := fields[fieldPrice]; price != "" {
		return "add product " + product + ", price " + price + ", stock " + qty, true
	}
	return "update stock of " + product + " to " + qty, true
}
