package galaxy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned, wrapped with field context, when Parameters are out of range.
var ErrInvalidParameter = errors.New("invalid galaxy parameter")

// Validate checks the ranges Generate depends on.
// Branches must be at least 1; zero arms has no defined angle.
//
// Returns:
//   - error: wraps ErrInvalidParameter describing the first offending field, or nil
func (p Parameters) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidParameter, p.Count)
	}
	if p.Branches < 1 {
		return fmt.Errorf("%w: branches must be >= 1, got %d", ErrInvalidParameter, p.Branches)
	}
	floats := []struct {
		name  string
		value float32
	}{
		{"size", p.Size},
		{"radius", p.Radius},
		{"spin", p.Spin},
		{"randomness", p.Randomness},
		{"randomnessPower", p.RandomnessPower},
	}
	for _, f := range floats {
		v := float64(f.value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	if p.Radius < 0 {
		return fmt.Errorf("%w: radius must be >= 0, got %v", ErrInvalidParameter, p.Radius)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size must be > 0, got %v", ErrInvalidParameter, p.Size)
	}
	return nil
}
