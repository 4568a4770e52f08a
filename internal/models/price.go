// internal/models/price.go
package models

import (
	"strconv"
	"strings"
)

// PriceRange is a closed interval [Min, Max] parsed from the free-text price
// field on an influencer profile. A nil *PriceRange means "no constraint":
// either the field was empty/"unknown" or it did not match any grammar.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UpperBoundPrice models values like "< $250": anything up to the bound.
func UpperBoundPrice(bound float64) *PriceRange {
	return &PriceRange{Min: 0, Max: bound}
}

// LowerBoundPrice models values like "$5,000 >". The real ceiling is unknown,
// so twice the floor stands in for it.
func LowerBoundPrice(bound float64) *PriceRange {
	return &PriceRange{Min: bound, Max: bound * 2}
}

// BoundedPrice models explicit "low - high" ranges.
func BoundedPrice(low, high float64) *PriceRange {
	return &PriceRange{Min: low, Max: high}
}

// Overlaps reports whether the range intersects the window [min, max].
func (r *PriceRange) Overlaps(min, max float64) bool {
	return r.Min <= max && r.Max >= min
}

// ParsePriceRange parses the free-text price field. It never fails: every
// malformed value degrades to nil so data-entry noise cannot exclude a
// candidate. Grammars, in priority order:
//
//	""            -> nil
//	"unknown"     -> nil (case-insensitive)
//	"< $250"      -> [0, 250]
//	"$5,000 >"    -> [5000, 10000]
//	"$1,000 - $3,000" -> [1000, 3000]
//	anything else -> nil
//
// Currency symbols, thousands-separator commas, and surrounding whitespace
// are stripped before matching.
func ParsePriceRange(raw string) *PriceRange {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "unknown") {
		return nil
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "<") {
		bound, ok := parsePriceNumber(strings.TrimPrefix(cleaned, "<"))
		if !ok {
			return nil
		}
		return UpperBoundPrice(bound)
	}

	if strings.HasSuffix(cleaned, ">") {
		bound, ok := parsePriceNumber(strings.TrimSuffix(cleaned, ">"))
		if !ok {
			return nil
		}
		return LowerBoundPrice(bound)
	}

	if low, high, ok := splitPriceRange(cleaned); ok {
		return BoundedPrice(low, high)
	}

	return nil
}

func splitPriceRange(cleaned string) (float64, float64, bool) {
	parts := strings.SplitN(cleaned, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	low, okLow := parsePriceNumber(parts[0])
	high, okHigh := parsePriceNumber(parts[1])
	if !okLow || !okHigh {
		return 0, 0, false
	}
	return low, high, true
}

func parsePriceNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
