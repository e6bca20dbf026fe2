package enums

import "fmt"

// Thickness enumerates the door slab thickness options offered at order time.
type Thickness string

const (
	Thickness30mm   Thickness = "30mm"
	Thickness32mm   Thickness = "32mm"
	Thickness35mm   Thickness = "35mm"
	ThicknessCustom Thickness = "Custom"
)

// DefaultThickness is applied to freshly added dimension rows.
const DefaultThickness = Thickness30mm

var validThicknesses = []Thickness{
	Thickness30mm,
	Thickness32mm,
	Thickness35mm,
	ThicknessCustom,
}

// String implements fmt.Stringer.
func (t Thickness) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Thickness.
func (t Thickness) IsValid() bool {
	for _, candidate := range validThicknesses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseThickness converts raw input into a Thickness.
func ParseThickness(value string) (Thickness, error) {
	for _, candidate := range validThicknesses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid thickness %q", value)
}
