// Package units converts between the area and yield units accepted from the
// UI. Areas are stored in stremmata, yields in kilograms; everything else is
// converted at the edge.
//
// 1 στρέμμα = 1000 τετραγωνικά μέτρα
// 1 εκτάριο = 10 στρέμματα
package units

import (
	"fmt"
	"strings"
)

// AreaUnit identifies an area unit accepted from the UI.
type AreaUnit string

const (
	Stremmata        AreaUnit = "stremmata"
	Hectares         AreaUnit = "hectares"
	SquareMeters     AreaUnit = "square_meters"
	SquareKilometers AreaUnit = "square_kilometers"
)

// ParseAreaUnit validates a caller-supplied unit string.
func ParseAreaUnit(s string) (AreaUnit, error) {
	switch AreaUnit(strings.ToLower(strings.TrimSpace(s))) {
	case Stremmata:
		return Stremmata, nil
	case Hectares:
		return Hectares, nil
	case SquareMeters:
		return SquareMeters, nil
	case SquareKilometers:
		return SquareKilometers, nil
	}
	return "", fmt.Errorf("unknown area unit %q", s)
}

// ToStremmata converts a value in the given unit to stremmata, the storage
// unit. Callers apply display rounding separately.
func ToStremmata(value float64, from AreaUnit) (float64, error) {
	switch from {
	case Stremmata:
		return value, nil
	case Hectares:
		return value * 10, nil
	case SquareMeters:
		return value / 1000, nil
	case SquareKilometers:
		return value * 1_000_000, nil
	}
	return 0, fmt.Errorf("unknown area unit %q", from)
}

// FromStremmata converts a stored stremmata value to the given unit.
func FromStremmata(value float64, to AreaUnit) (float64, error) {
	switch to {
	case Stremmata:
		return value, nil
	case Hectares:
		return value / 10, nil
	case SquareMeters:
		return value * 1000, nil
	case SquareKilometers:
		return value / 1_000_000, nil
	}
	return 0, fmt.Errorf("unknown area unit %q", to)
}

// Abbreviation returns the Greek display abbreviation for a unit.
func Abbreviation(unit AreaUnit) string {
	switch unit {
	case Stremmata:
		return "στρ."
	case Hectares:
		return "εκτ."
	case SquareMeters:
		return "τ.μ."
	case SquareKilometers:
		return "χλμ²"
	}
	return string(unit)
}

// FormatArea renders a value with its unit abbreviation, one decimal by
// default elsewhere in the app.
func FormatArea(value float64, unit AreaUnit, precision int) string {
	return fmt.Sprintf("%.*f %s", precision, value, Abbreviation(unit))
}
