package galaxy

import (
	"fmt"
	"math"
)

// JitterStrategy produces the random per-axis offset added to a star's spiral position.
type JitterStrategy interface {
	// Name returns the strategy identifier used in logs and configuration.
	Name() string

	// Jitter draws the x, y and z offsets for one star, in that order.
	//
	// Parameters:
	//   - rng: the random source to draw from
	//   - params: the generation parameters
	//
	// Returns:
	//   - x, y, z: the offsets to add to the star position
	Jitter(rng RandomSource, params Parameters) (x, y, z float32)

	// Validate checks the parameters this strategy depends on.
	//
	// Parameters:
	//   - params: the generation parameters
	//
	// Returns:
	//   - error: wraps ErrInvalidParameter when a required field is out of range
	Validate(params Parameters) error
}

// UniformJitter offsets each axis by rng*Randomness.
// The offset is always non-negative, so the cloud leans toward +x, +y and +z.
type UniformJitter struct{}

var _ JitterStrategy = UniformJitter{}

func (UniformJitter) Name() string {
	return "uniform"
}

func (UniformJitter) Jitter(rng RandomSource, params Parameters) (float32, float32, float32) {
	r := float64(params.Randomness)
	x := rng.Float64() * r
	y := rng.Float64() * r
	z := rng.Float64() * r
	return float32(x), float32(y), float32(z)
}

func (UniformJitter) Validate(Parameters) error {
	return nil
}

// PowerSignedJitter offsets each axis by ±u^RandomnessPower with an independent fair sign.
// Values cluster tightly around zero; a smaller power gives heavier tails.
type PowerSignedJitter struct{}

var _ JitterStrategy = PowerSignedJitter{}

func (PowerSignedJitter) Name() string {
	return "power"
}

func (PowerSignedJitter) Jitter(rng RandomSource, params Parameters) (float32, float32, float32) {
	p := float64(params.RandomnessPower)
	x := signedPow(rng, p)
	y := signedPow(rng, p)
	z := signedPow(rng, p)
	return float32(x), float32(y), float32(z)
}

func (PowerSignedJitter) Validate(params Parameters) error {
	if !(params.RandomnessPower > 0) || math.IsInf(float64(params.RandomnessPower), 0) {
		return fmt.Errorf("%w: randomnessPower must be > 0, got %v", ErrInvalidParameter, params.RandomnessPower)
	}
	return nil
}

// signedPow draws u, then the sign, and returns sign*u^p.
func signedPow(rng RandomSource, p float64) float64 {
	u := rng.Float64()
	v := math.Pow(u, p)
	if rng.Float64() < 0.5 {
		return v
	}
	return -v
}

// JitterStrategyByName resolves a strategy from its Name.
//
// Parameters:
//   - name: "uniform" or "power"
//
// Returns:
//   - JitterStrategy: the matching strategy
//   - error: if the name is unknown
func JitterStrategyByName(name string) (JitterStrategy, error) {
	switch name {
	case UniformJitter{}.Name():
		return UniformJitter{}, nil
	case PowerSignedJitter{}.Name():
		return PowerSignedJitter{}, nil
	default:
		return nil, fmt.Errorf("unknown jitter strategy %q", name)
	}
}
