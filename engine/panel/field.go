package panel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/lucasb-eyer/go-colorful"
)

// Kind describes how a Field's value is stepped and displayed.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// Palette is the set of colors a color Field cycles through.
// It contains every color used by the galaxy presets.
var Palette = []colorful.Color{
	galaxy.MustHex("#ffffff"),
	galaxy.MustHex("#ff6030"),
	galaxy.MustHex("#1b3984"),
	galaxy.MustHex("#ffd27d"),
	galaxy.MustHex("#9bb0ff"),
	galaxy.MustHex("#c77dff"),
	galaxy.MustHex("#7dffb0"),
}

// Field is an editable galaxy parameter with a declared range.
// Color fields hold a Palette index as their value.
type Field struct {
	Name string
	Kind Kind
	Min  float64
	Max  float64
	Step float64

	get func(galaxy.Parameters) float64
	set func(*galaxy.Parameters, float64)
}

// Get reads the field's value from params.
//
// Parameters:
//   - params: the parameters to read
//
// Returns:
//   - float64: the current value, or the nearest Palette index for color fields
func (f Field) Get(params galaxy.Parameters) float64 {
	return f.get(params)
}

// Set writes value to params after clamping and snapping it to the field's range.
//
// Parameters:
//   - params: the parameters to modify
//   - value: the requested value
func (f Field) Set(params *galaxy.Parameters, value float64) {
	f.set(params, f.Snap(value))
}

// Snap clamps value into [Min, Max] and rounds it to the nearest Step from Min.
// Color fields wrap around the Palette instead of clamping.
//
// Parameters:
//   - value: the value to snap
//
// Returns:
//   - float64: the snapped value
func (f Field) Snap(value float64) float64 {
	if math.IsNaN(value) {
		return f.Min
	}
	if f.Kind == KindColor {
		n := len(Palette)
		i := int(math.Round(value)) % n
		if i < 0 {
			i += n
		}
		return float64(i)
	}
	steps := math.Round((value - f.Min) / f.Step)
	v := f.Min + steps*f.Step
	// Trim accumulated binary error so 0.1 steps stay at one decimal.
	v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'f', f.decimals(), 64), 64)
	return math.Max(f.Min, math.Min(f.Max, v))
}

// Format renders value the way the panel summary shows it.
//
// Parameters:
//   - value: the value to format
//
// Returns:
//   - string: the formatted value
func (f Field) Format(value float64) string {
	switch f.Kind {
	case KindInt:
		return strconv.Itoa(int(value))
	case KindColor:
		return Palette[int(f.Snap(value))].Hex()
	default:
		return strconv.FormatFloat(value, 'f', f.decimals(), 64)
	}
}

func (f Field) decimals() int {
	if f.Step <= 0 {
		return 0
	}
	return int(math.Max(0, math.Ceil(-math.Log10(f.Step)-1e-9)))
}

// nearestPaletteIndex returns the index of the Palette color closest to c.
func nearestPaletteIndex(c colorful.Color) float64 {
	best, bestDist := 0, math.Inf(1)
	for i, p := range Palette {
		if d := c.DistanceRgb(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return float64(best)
}

func intField(name string, min, max, step float64, ptr func(*galaxy.Parameters) *int) Field {
	return Field{
		Name: name, Kind: KindInt, Min: min, Max: max, Step: step,
		get: func(p galaxy.Parameters) float64 { return float64(*ptr(&p)) },
		set: func(p *galaxy.Parameters, v float64) { *ptr(p) = int(math.Round(v)) },
	}
}

func floatField(name string, min, max, step float64, ptr func(*galaxy.Parameters) *float32) Field {
	return Field{
		Name: name, Kind: KindFloat, Min: min, Max: max, Step: step,
		get: func(p galaxy.Parameters) float64 {
			// Shortest float32 text, so a stored 0.3 reads back as 0.3 rather than 0.30000001.
			v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(*ptr(&p)), 'g', -1, 32), 64)
			return v
		},
		set: func(p *galaxy.Parameters, v float64) { *ptr(p) = float32(v) },
	}
}

func colorField(name string, ptr func(*galaxy.Parameters) *colorful.Color) Field {
	return Field{
		Name: name, Kind: KindColor, Min: 0, Max: float64(len(Palette) - 1), Step: 1,
		get: func(p galaxy.Parameters) float64 { return nearestPaletteIndex(*ptr(&p)) },
		set: func(p *galaxy.Parameters, v float64) { *ptr(p) = Palette[int(v)] },
	}
}

// DefaultFields returns the editable galaxy parameters in display order.
//
// Returns:
//   - []Field: a fresh slice of field descriptors
func DefaultFields() []Field {
	return []Field{
		intField("count", 0, 100000, 100, func(p *galaxy.Parameters) *int { return &p.Count }),
		floatField("size", 0.01, 1, 0.01, func(p *galaxy.Parameters) *float32 { return &p.Size }),
		floatField("radius", 0, 20, 1, func(p *galaxy.Parameters) *float32 { return &p.Radius }),
		intField("branches", 0, 20, 1, func(p *galaxy.Parameters) *int { return &p.Branches }),
		floatField("spin", -5, 5, 0.1, func(p *galaxy.Parameters) *float32 { return &p.Spin }),
		floatField("randomness", 0, 2, 0.1, func(p *galaxy.Parameters) *float32 { return &p.Randomness }),
		floatField("randomnessPower", 1, 10, 0.1, func(p *galaxy.Parameters) *float32 { return &p.RandomnessPower }),
		colorField("color", func(p *galaxy.Parameters) *colorful.Color { return &p.Color }),
		colorField("insideColor", func(p *galaxy.Parameters) *colorful.Color { return &p.InsideColor }),
		colorField("outsideColor", func(p *galaxy.Parameters) *colorful.Color { return &p.OutsideColor }),
	}
}

// findField returns the field named name.
func findField(fields []Field, name string) (int, error) {
	for i, f := range fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
