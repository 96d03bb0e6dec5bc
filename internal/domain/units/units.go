// Package units converts free-text fighter measurements into the numeric
// units the matchup vector uses: centimetres for height and reach, pounds
// for weight.
//
// Every conversion is total. Input that cannot be parsed resolves to the
// package default instead of an error.
package units

import (
	"math"
	"strconv"
	"strings"
)

// Conversion factors and fallbacks.
const (
	CmPerFoot = 30.48
	CmPerInch = 2.54

	// DefaultHeightCm is used when a height string cannot be parsed.
	DefaultHeightCm = 180.0
	// DefaultReachCm is used when a reach string is not a whole number of inches.
	DefaultReachCm = 180.0
	// DefaultWeightLbs is used when a weight string has no digits.
	DefaultWeightLbs = 170.0
)

// HeightToCm parses a feet'inches string such as 5' 11" and returns centimetres.
func HeightToCm(text string) float64 {
	clean := strings.ReplaceAll(text, `"`, "")
	parts := strings.Split(clean, "'")
	if len(parts) != 2 {
		return DefaultHeightCm
	}
	feet, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return DefaultHeightCm
	}
	inches, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return DefaultHeightCm
	}
	cm := feet*CmPerFoot + inches*CmPerInch
	if math.IsNaN(cm) || math.IsInf(cm, 0) {
		return DefaultHeightCm
	}
	return cm
}

// ReachToCm parses a reach in whole inches (72", 72, 7-2 style noise removed)
// and returns centimetres.
func ReachToCm(text string) float64 {
	clean := strings.NewReplacer(`"`, "", "-", "").Replace(text)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return DefaultReachCm
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return DefaultReachCm
		}
	}
	inches, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return DefaultReachCm
	}
	return inches * CmPerInch
}

// WeightToLbs keeps every digit in text and parses the result.
// "155 lbs." gives 155. A decimal point is dropped with the rest of the
// non-digit characters, so "155.5" gives 1555.
func WeightToLbs(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultWeightLbs
	}
	lbs, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(lbs, 0) {
		return DefaultWeightLbs
	}
	return lbs
}
