package galaxy

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorStrategy assigns a color to each generated star.
type ColorStrategy interface {
	// Name returns the strategy identifier used in logs and configuration.
	Name() string

	// Enabled reports whether the strategy produces per-star colors at all.
	// When false, PointCloud.Colors is left nil and Color is never called.
	Enabled() bool

	// Color returns the color for a star at the given radius.
	//
	// Parameters:
	//   - params: the generation parameters
	//   - radius: the star's radial distance before jitter
	//
	// Returns:
	//   - colorful.Color: the star color
	Color(params Parameters, radius float32) colorful.Color
}

// NoColor disables per-star colors; the renderer uses the material tint only.
type NoColor struct{}

var _ ColorStrategy = NoColor{}

func (NoColor) Name() string {
	return "none"
}

func (NoColor) Enabled() bool {
	return false
}

func (NoColor) Color(params Parameters, _ float32) colorful.Color {
	return params.Color
}

// RadiusGradient blends InsideColor toward OutsideColor linearly in RGB by radius/Radius.
type RadiusGradient struct{}

var _ ColorStrategy = RadiusGradient{}

func (RadiusGradient) Name() string {
	return "gradient"
}

func (RadiusGradient) Enabled() bool {
	return true
}

func (RadiusGradient) Color(params Parameters, radius float32) colorful.Color {
	t := 0.0
	if params.Radius > 0 {
		t = float64(radius / params.Radius)
	}
	return params.InsideColor.BlendRgb(params.OutsideColor, t)
}

// ColorStrategyByName resolves a strategy from its Name.
//
// Parameters:
//   - name: "none" or "gradient"
//
// Returns:
//   - ColorStrategy: the matching strategy
//   - error: if the name is unknown
func ColorStrategyByName(name string) (ColorStrategy, error) {
	switch name {
	case NoColor{}.Name():
		return NoColor{}, nil
	case RadiusGradient{}.Name():
		return RadiusGradient{}, nil
	default:
		return nil, fmt.Errorf("unknown color strategy %q", name)
	}
}

// MustHex parses a "#rrggbb" string and panics if it is malformed.
// Intended for package-level defaults.
//
// Parameters:
//   - s: the hex color string
//
// Returns:
//   - colorful.Color: the parsed color
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("galaxy: invalid color %q: %v", s, err))
	}
	return c
}
