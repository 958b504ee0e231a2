// Package normalize coerces loosely-typed vendor feed cells into the fixed
// catalog schema: numeric stock/price values and the gender taxonomy.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/feed"
)

// Gender is the fixed taxonomy every item resolves into.
type Gender string

const (
	GenderMens      Gender = "MENS"
	GenderWomens    Gender = "WOMENS"
	GenderUnisex    Gender = "UNISEX"
	GenderChildrens Gender = "CHILDRENS"
)

// ParseGenderTag maps an externally supplied tag (e.g. from an override file)
// to a taxonomy value. Returns false for unknown tags.
func ParseGenderTag(tag string) (Gender, bool) {
	switch Gender(strings.ToUpper(strings.TrimSpace(tag))) {
	case GenderMens:
		return GenderMens, true
	case GenderWomens:
		return GenderWomens, true
	case GenderUnisex:
		return GenderUnisex, true
	case GenderChildrens:
		return GenderChildrens, true
	}
	return "", false
}

var (
	reWomens    = regexp.MustCompile(`\b(women'?s?|female|ladies|lady)\b`)
	reMens      = regexp.MustCompile(`\b(men'?s?|male)\b`)
	reChildrens = regexp.MustCompile(`\b(child(ren)?'?s?|kids?|boys?|girls?|youth|baby|infant|toddler)\b`)
	reUnisex    = regexp.MustCompile(`\b(unisex|uni)\b`)

	reNonNumeric = regexp.MustCompile(`[^0-9.+\-]`)
)

// ParseGender normalizes free-text gender into the taxonomy, falling back to
// the category text when no explicit gender is present. Anything that does
// not match, including vendor catch-alls like "Shop All" or "Misc", resolves
// to UNISEX so no item disappears from gender-filtered views.
func ParseGender(raw, category string) Gender {
	signal := strings.ToLower(strings.TrimSpace(raw))
	if signal == "" {
		signal = strings.ToLower(strings.TrimSpace(category))
	}

	switch {
	// WOMENS before MENS: "women"/"female" embed the shorter tokens.
	case reWomens.MatchString(signal):
		return GenderWomens
	case reMens.MatchString(signal):
		return GenderMens
	case reChildrens.MatchString(signal):
		return GenderChildrens
	case reUnisex.MatchString(signal):
		return GenderUnisex
	}
	return GenderUnisex
}

// Numeric strips everything outside [0-9.+-] and parses what remains.
// Currency symbols, thousands separators and unit suffixes are all noise.
// Returns 0 when nothing parseable is left; never errors.
func Numeric(raw string) float64 {
	cleaned := reNonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

var (
	stockColumns = []string{"Current Stock", "Qty", "Quantity", "Available", "Stock", "Inventory"}
	priceColumns = []string{"Wholesale Price", "Piece Price", "Price", "Cost", "MSRP"}
)

// Stock reads the quantity from whichever stock column the vendor used.
// Unparsable and negative values coerce to 0.
func Stock(row feed.Row) int {
	v := Numeric(row.Lookup(stockColumns...))
	if v < 0 {
		return 0
	}
	return int(v)
}

// Price reads the price column and, when a wholesale markup multiplier is
// configured, applies it rounded to two decimals. Zero or absent source
// values stay 0: no markup on free items.
func Price(row feed.Row, markup float64) float64 {
	v := Numeric(row.Lookup(priceColumns...))
	if v <= 0 {
		return 0
	}
	if markup > 0 {
		v = math.Round(v*markup*100) / 100
	}
	return v
}
