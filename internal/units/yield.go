package units

import (
	"fmt"
	"strings"
)

// YieldUnit identifies a harvest yield unit. Yields are a separate domain
// from areas: kilograms are the storage unit, tons the only alternative.
type YieldUnit string

const (
	Kilograms YieldUnit = "kg"
	Tons      YieldUnit = "ton"
)

// ParseYieldUnit validates a caller-supplied yield unit string.
func ParseYieldUnit(s string) (YieldUnit, error) {
	switch YieldUnit(strings.ToLower(strings.TrimSpace(s))) {
	case Kilograms:
		return Kilograms, nil
	case Tons, "tons":
		return Tons, nil
	}
	return "", fmt.Errorf("unknown yield unit %q", s)
}

// ToKilograms converts a yield value to kilograms, the storage unit.
func ToKilograms(value float64, from YieldUnit) (float64, error) {
	switch from {
	case Kilograms:
		return value, nil
	case Tons:
		return value * 1000, nil
	}
	return 0, fmt.Errorf("unknown yield unit %q", from)
}

// FromKilograms converts a stored kilogram value to the given unit.
func FromKilograms(value float64, to YieldUnit) (float64, error) {
	switch to {
	case Kilograms:
		return value, nil
	case Tons:
		return value / 1000, nil
	}
	return 0, fmt.Errorf("unknown yield unit %q", to)
}
