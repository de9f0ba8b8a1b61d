package galaxy

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Parameters is the full set of values that drive galaxy generation.
// It is passed by value into Generate and never mutated.
type Parameters struct {
	Count           int     // number of stars to generate
	Size            float32 // rendered star size, passed through to the points material
	Radius          float32 // maximum orbital radius
	Branches        int     // number of spiral arms
	Spin            float32 // radians of twist per unit radius, any sign
	Randomness      float32 // jitter magnitude for UniformJitter
	RandomnessPower float32 // jitter exponent for PowerSignedJitter, must be > 0

	Color        colorful.Color // material tint
	InsideColor  colorful.Color // gradient color at the galaxy center
	OutsideColor colorful.Color // gradient color at Radius
}

// PointCloud is the output of a single generation. The caller owns it exclusively.
type PointCloud struct {
	// Positions holds Count xyz triplets, flattened.
	Positions []float32

	// Colors holds Count rgb triplets, flattened, or nil when no ColorStrategy is enabled.
	Colors []float32

	// Size is the star size copied from the generating Parameters.
	Size float32

	// Tint is the material color copied from the generating Parameters.
	Tint colorful.Color
}

// Count returns the number of stars in the cloud.
//
// Returns:
//   - int: number of xyz triplets in Positions
func (c *PointCloud) Count() int {
	return len(c.Positions) / 3
}

// HasColors reports whether per-star colors were generated.
//
// Returns:
//   - bool: true if Colors is populated
func (c *PointCloud) HasColors() bool {
	return c.Colors != nil
}

// generator is the implementation of the Generator interface.
type generator struct {
	jitter JitterStrategy
	color  ColorStrategy
}

// Generator maps Parameters and a RandomSource to a freshly allocated PointCloud.
// Implementations hold no state between calls and are safe for concurrent use as long
// as each call gets its own RandomSource.
type Generator interface {
	// Generate builds a new point cloud.
	// Star i sits on arm (i mod Branches) at a radius drawn uniformly from [0, Radius),
	// twisted by radius*Spin and offset by the configured JitterStrategy.
	//
	// Parameters:
	//   - params: the generation parameters
	//   - rng: the random source consumed in a fixed order (radius, then x, y, z jitter per star)
	//
	// Returns:
	//   - *PointCloud: the generated cloud, owned by the caller
	//   - error: wraps ErrInvalidParameter when params are out of range
	Generate(params Parameters, rng RandomSource) (*PointCloud, error)

	// JitterStrategy returns the configured jitter strategy.
	//
	// Returns:
	//   - JitterStrategy: the strategy applied to every star
	JitterStrategy() JitterStrategy

	// ColorStrategy returns the configured color strategy.
	//
	// Returns:
	//   - ColorStrategy: the strategy used to fill PointCloud.Colors
	ColorStrategy() ColorStrategy
}

var _ Generator = &generator{}

// NewGenerator creates a Generator. Without options it uses UniformJitter and NoColor.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: a new stateless generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generator{
		jitter: UniformJitter{},
		color:  NoColor{},
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *generator) JitterStrategy() JitterStrategy {
	return g.jitter
}

func (g *generator) ColorStrategy() ColorStrategy {
	return g.color
}

func (g *generator) Generate(params Parameters, rng RandomSource) (*PointCloud, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidParameter)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := g.jitter.Validate(params); err != nil {
		return nil, err
	}

	cloud := &PointCloud{
		Positions: make([]float32, params.Count*3),
		Size:      params.Size,
		Tint:      params.Color,
	}
	withColor := g.color.Enabled()
	if withColor {
		cloud.Colors = make([]float32, params.Count*3)
	}

	radius := float64(params.Radius)
	spin := float64(params.Spin)
	branches := params.Branches

	for i := 0; i < params.Count; i++ {
		r := rng.Float64() * radius
		spinAngle := r * spin
		branchAngle := BranchAngle(i, branches)

		jx, jy, jz := g.jitter.Jitter(rng, params)

		angle := branchAngle + spinAngle
		i3 := i * 3
		cloud.Positions[i3] = float32(math.Cos(angle)*r) + jx
		cloud.Positions[i3+1] = jy
		cloud.Positions[i3+2] = float32(math.Sin(angle)*r) + jz

		if withColor {
			c := g.color.Color(params, float32(r))
			cloud.Colors[i3] = float32(c.R)
			cloud.Colors[i3+1] = float32(c.G)
			cloud.Colors[i3+2] = float32(c.B)
		}
	}

	return cloud, nil
}

// BranchAngle returns the arm angle assigned to star index i.
//
// Parameters:
//   - i: the star index
//   - branches: the number of arms, must be >= 1
//
// Returns:
//   - float64: the angle in radians in [0, 2π)
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * 2 * math.Pi
}
