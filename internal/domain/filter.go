package domain

import (
	"strconv"
	"time"
)

// PageSize is the fixed listing page size.
const PageSize = 2

// ProductFilter carries the raw listing query parameters. Values stay strings
// until a branch actually needs them parsed, so presence checks match what
// the client sent, not what survived parsing.
type ProductFilter struct {
	Title     string
	VariantID string
	PriceFrom string
	PriceTo   string
	Date      string
	Page      int
}

// FilterCase identifies which listing branch applies.
type FilterCase int

const (
	CaseAll FilterCase = iota
	CaseTitle
	CaseVariant
	CaseTitleOrVariant
	CasePriceRange
	CaseTitleOrVariantAndPrice
	CaseTitleAndPrice
	CaseDate
)

// Case resolves the filter to exactly one branch. The ladder is a fixed
// table evaluated top to bottom, first match wins. Combinations not listed
// (variant+price without title, date alongside anything) fall through: date
// is checked independently last, and an unparseable date means no filter at
// all. CaseTitleOrVariant is an OR of both conditions, not an AND.
func (f ProductFilter) Case() FilterCase {
	hasTitle := f.Title != ""
	hasVariant := f.VariantID != ""
	hasFrom := f.PriceFrom != ""
	hasTo := f.PriceTo != ""
	hasDate := f.Date != ""

	switch {
	case hasTitle && !hasVariant && !hasFrom && !hasTo && !hasDate:
		return CaseTitle
	case hasVariant && !hasTitle && !hasFrom && !hasTo && !hasDate:
		return CaseVariant
	case hasTitle && hasVariant && !hasFrom && !hasTo && !hasDate:
		return CaseTitleOrVariant
	case hasFrom && hasTo && !hasTitle && !hasVariant && !hasDate:
		return CasePriceRange
	case hasTitle && hasVariant && hasFrom && hasTo && !hasDate:
		return CaseTitleOrVariantAndPrice
	case hasTitle && hasFrom && hasTo && !hasVariant && !hasDate:
		return CaseTitleAndPrice
	}
	if hasDate {
		if _, _, ok := f.DayWindow(); ok {
			return CaseDate
		}
	}
	return CaseAll
}

// DayWindow parses Date as YYYY-MM-DD and returns the half-open 24h window
// covering that calendar day. ok is false when Date is missing or malformed.
func (f ProductFilter) DayWindow() (from, to time.Time, ok bool) {
	day, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return day, day.Add(24 * time.Hour), true
}

// PriceBounds parses the inclusive price range. Only meaningful for the
// price-carrying cases; a malformed bound surfaces as an error there.
func (f ProductFilter) PriceBounds() (from, to float64, err error) {
	from, err = strconv.ParseFloat(f.PriceFrom, 64)
	if err != nil {
		return 0, 0, err
	}
	to, err = strconv.ParseFloat(f.PriceTo, 64)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
