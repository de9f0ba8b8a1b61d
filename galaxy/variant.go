package galaxy

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Variant selects a parameter preset together with its jitter and color strategies.
type Variant int

const (
	// VariantClassic uses uniform non-negative jitter and a single tint.
	VariantClassic Variant = iota

	// VariantColored uses power-biased signed jitter and an inside/outside radius gradient.
	VariantColored
)

var variantNames = map[Variant]string{
	VariantClassic: "classic",
	VariantColored: "colored",
}

// Variants lists every known variant in declaration order.
var Variants = []Variant{VariantClassic, VariantColored}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant resolves a variant from its name, case-insensitively.
//
// Parameters:
//   - s: "classic" or "colored"
//
// Returns:
//   - Variant: the parsed variant
//   - error: if the name is unknown
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	return VariantClassic, fmt.Errorf("unknown galaxy variant %q", s)
}

// JitterStrategy returns the jitter strategy used by the variant.
//
// Returns:
//   - JitterStrategy: the variant's jitter
func (v Variant) JitterStrategy() JitterStrategy {
	if v == VariantColored {
		return PowerSignedJitter{}
	}
	return UniformJitter{}
}

// ColorStrategy returns the color strategy used by the variant.
//
// Returns:
//   - ColorStrategy: the variant's coloring
func (v Variant) ColorStrategy() ColorStrategy {
	if v == VariantColored {
		return RadiusGradient{}
	}
	return NoColor{}
}

// Preset returns the default parameters of the variant.
//
// Returns:
//   - Parameters: a fresh copy of the defaults
func (v Variant) Preset() Parameters {
	if v == VariantColored {
		return PresetColored()
	}
	return PresetClassic()
}

// PresetClassic returns the defaults of the uniform-jitter galaxy.
//
// Returns:
//   - Parameters: the classic defaults
func PresetClassic() Parameters {
	return Parameters{
		Count:           1000,
		Size:            0.02,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      1,
		RandomnessPower: 3,
		Color:           colorful.Color{R: 1, G: 1, B: 1},
		InsideColor:     MustHex("#ff6030"),
		OutsideColor:    MustHex("#1b3984"),
	}
}

// PresetColored returns the defaults of the power-jitter, gradient-colored galaxy.
//
// Returns:
//   - Parameters: the colored defaults
func PresetColored() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		Color:           colorful.Color{R: 1, G: 1, B: 1},
		InsideColor:     MustHex("#ff6030"),
		OutsideColor:    MustHex("#1b3984"),
	}
}
