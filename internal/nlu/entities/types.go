// internal/nlu/entities/types.go
package entities

import (
	"time"

	"commerce-nlu/internal/nlu/langid"
)

// DateLayout is the day-first layout used when dates leave the parser.
const DateLayout = "02/01/2006"

// Input carries every view of a message an extractor may need.
type Input struct {
	Raw        string
	Normalized string
	Profile    langid.Profile
}

// ProductMatch is a product name as the user wrote it plus its canonical
// form. Confidence is 0 when no canonical name was found.
type ProductMatch struct {
	Name             string
	StandardizedName string
	Confidence       float64
}

type Quantity struct {
	Value int
	Unit  string
}

type Price struct {
	Value    float64
	Currency string
}

type Period string

const (
	PeriodToday       Period = "today"
	PeriodYesterday   Period = "yesterday"
	PeriodWeek        Period = "week"
	PeriodLastWeek    Period = "last_week"
	PeriodMonth       Period = "month"
	PeriodLastMonth   Period = "last_month"
	PeriodLastNDays   Period = "last_N_days"
	PeriodLastNWeeks  Period = "last_N_weeks"
	PeriodLastNMonths Period = "last_N_months"
	PeriodAll         Period = "all"
	PeriodCustom      Period = "custom"
)

// DateRange is a reporting window. Start and End are only set for custom
// ranges and are never reversed; an unparseable calendar date leaves both
// nil and fills Error instead.
type DateRange struct {
	Period        Period
	Count         int
	Start         *time.Time
	End           *time.Time
	ReversedDates bool
	Error         string
}

type Threshold struct {
	Value int
}

// Entities is the closed set of per-intent entity bags.
type Entities interface {
	Empty() bool
	Map() map[string]interface{}
}

type AddProductEntities struct {
	Product  ProductMatch
	Price    *Price
	Quantity *Quantity
}

func (e *AddProductEntities) Empty() bool {
	return e == nil || e.Product.Name == ""
}

func (e *AddProductEntities) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if e.Empty() {
		return m
	}
	productFields(m, "name", e.Product)
	if e.Price != nil {
		m["price"] = e.Price.Value
		m["currency"] = e.Price.Currency
	}
	if e.Quantity != nil {
		m["quantity"] = e.Quantity.Value
		m["unit"] = e.Quantity.Unit
	}
	return m
}

type EditStockEntities struct {
	Product ProductMatch
	Stock   int
}

func (e *EditStockEntities) Empty() bool {
	return e == nil || e.Product.Name == ""
}

func (e *EditStockEntities) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if e.Empty() {
		return m
	}
	productFields(m, "name", e.Product)
	m["stock"] = e.Stock
	return m
}

type ReportEntities struct {
	Range DateRange
}

func (e *ReportEntities) Empty() bool {
	return e == nil || e.Range.Period == ""
}

func (e *ReportEntities) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if e.Empty() {
		return m
	}
	r := e.Range
	m["range"] = string(r.Period)
	if r.Count > 0 {
		m["count"] = r.Count
	}
	if r.Start != nil {
		m["start_date"] = r.Start.Format(DateLayout)
	}
	if r.End != nil {
		m["end_date"] = r.End.Format(DateLayout)
	}
	if r.ReversedDates {
		m["reversed_dates"] = true
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	return m
}

type LowStockEntities struct {
	Threshold Threshold
}

func (e *LowStockEntities) Empty() bool {
	return e == nil
}

func (e *LowStockEntities) Map() map[string]interface{} {
	if e.Empty() {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"threshold": e.Threshold.Value}
}

type SearchEntities struct {
	Product     ProductMatch
	IsHindiOnly bool
	EnglishName string
}

func (e *SearchEntities) Empty() bool {
	return e == nil || e.Product.Name == ""
}

func (e *SearchEntities) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if e.Empty() {
		return m
	}
	productFields(m, "product_name", e.Product)
	if e.IsHindiOnly {
		m["is_hindi_only"] = true
	}
	if e.EnglishName != "" {
		m["english_name"] = e.EnglishName
	}
	return m
}

func productFields(m map[string]interface{}, nameKey string, p ProductMatch) {
	m[nameKey] = p.Name
	m["standardized_name"] = p.StandardizedName
	m["confidence"] = p.Confidence
}

// ToMap projects e to the string-keyed form handed to routers. It never
// returns nil.
func ToMap(e Entities) map[string]interface{} {
	if e == nil {
		return map[string]interface{}{}
	}
	return e.Map()
}

// IsEmpty treats a nil interface and a typed nil the same way.
func IsEmpty(e Entities) bool {
	return e == nil || e.Empty()
}
