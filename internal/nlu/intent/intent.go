// internal/nlu/intent/intent.go
package intent

import (
	"regexp"

	"commerce-nlu/internal/nlu/lexicon"
)

type Intent string

const (
	// None is reported when a negated request suppressed classification.
	None Intent = ""

	Register           Intent = "register"
	AddProduct         Intent = "add_product"
	EditStock          Intent = "edit_stock"
	GetInventory       Intent = "get_inventory"
	GetLowStock        Intent = "get_low_stock"
	GetReport          Intent = "get_report"
	GetInventoryReport Intent = "get_inventory_report"
	GetOrders          Intent = "get_orders"
	GetTopProducts     Intent = "get_top_products"
	GetCustomerData    Intent = "get_customer_data"
	SearchProduct      Intent = "search_product"
	Unknown            Intent = "unknown"
)

// All lists every classifiable intent.
var All = []Intent{
	Register, AddProduct, EditStock, GetInventory, GetLowStock, GetReport,
	GetInventoryReport, GetOrders, GetTopProducts, GetCustomerData, SearchProduct,
}

func (i Intent) String() string {
	return string(i)
}

// Valid reports whether i is part of the closed set, unknown included.
func (i Intent) Valid() bool {
	if i == Unknown {
		return true
	}
	for _, known := range All {
		if i == known {
			return true
		}
	}
	return false
}

// Rule binds an intent to its ordered pattern alternatives. An alternative
// with a guard in Unless does not match when the guard matches too.
type Rule struct {
	Intent   Intent
	Patterns []*regexp.Regexp
	Unless   map[int]*regexp.Regexp
}

// Match reports whether any pattern matches text.
func (r Rule) Match(text string) bool {
	for i, p := range r.Patterns {
		if !p.MatchString(text) {
			continue
		}
		if guard, ok := r.Unless[i]; ok && guard.MatchString(text) {
			continue
		}
		return true
	}
	return false
}

// except guards alternative i of r.
func (r Rule) except(i int, pattern string) Rule {
	unless := make(map[int]*regexp.Regexp, len(r.Unless)+1)
	for k, v := range r.Unless {
		unless[k] = v
	}
	unless[i] = regexp.MustCompile(lexicon.NFC(pattern))
	r.Unless = unless
	return r
}

func rule(i Intent, patterns ...string) Rule {
	return Rule{Intent: i, Patterns: compileAll(patterns...)}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(lexicon.NFC(p))
	}
	return out
}
