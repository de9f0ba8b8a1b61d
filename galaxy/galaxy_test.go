package galaxy

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource replays a fixed list of values, wrapping around at the end.
type sequenceSource struct {
	values []float64
	next   int
	draws  int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	s.draws++
	return v
}

func constantSource(v float64) *sequenceSource {
	return &sequenceSource{values: []float64{v}}
}

func TestGenerateThreeArmExample(t *testing.T) {
	params := Parameters{Count: 3, Size: 0.02, Radius: 10, Branches: 3, Spin: 0, Randomness: 0}

	cloud, err := NewGenerator().Generate(params, constantSource(0.5))
	require.NoError(t, err)
	require.Len(t, cloud.Positions, 9)

	want := []float32{
		5, 0, 0,
		-2.5, 0, 4.330127,
		-2.5, 0, -4.330127,
	}
	for i := range want {
		assert.InDelta(t, want[i], cloud.Positions[i], 1e-4, "component %d", i)
	}
	assert.Nil(t, cloud.Colors)
}

func TestGeneratePositionsLength(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.String(), func(t *testing.T) {
			for _, count := range []int{0, 1, 2, 17, 1000} {
				params := v.Preset()
				params.Count = count

				cloud, err := NewGenerator(WithVariant(v)).Generate(params, NewRandomSource(1))
				require.NoError(t, err)
				assert.Len(t, cloud.Positions, count*3)
				assert.Equal(t, count, cloud.Count())
				if v == VariantColored {
					assert.Len(t, cloud.Colors, count*3)
				}
			}
		})
	}
}

func TestGenerateZeroCountReturnsEmptyNonNilBuffers(t *testing.T) {
	params := PresetColored()
	params.Count = 0

	cloud, err := NewGenerator(WithVariant(VariantColored)).Generate(params, NewRandomSource(3))
	require.NoError(t, err)
	assert.NotNil(t, cloud.Positions)
	assert.Empty(t, cloud.Positions)
	assert.NotNil(t, cloud.Colors)
	assert.Empty(t, cloud.Colors)
}

func TestGenerateRoundRobinBranches(t *testing.T) {
	const count, branches = 100, 7
	params := Parameters{Count: count, Size: 0.1, Radius: 5, Branches: branches, Spin: 0, Randomness: 0}
	// keep every radius strictly positive so the arm angle is recoverable
	rng := &sequenceSource{values: []float64{0.2, 0.45, 0.7, 0.95}}

	cloud, err := NewGenerator().Generate(params, rng)
	require.NoError(t, err)

	perArm := make(map[int]int)
	step := 2 * math.Pi / branches
	for i := 0; i < count; i++ {
		x := float64(cloud.Positions[i*3])
		z := float64(cloud.Positions[i*3+2])
		angle := math.Atan2(z, x)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		arm := int(math.Round(angle/step)) % branches
		assert.Equal(t, i%branches, arm, "star %d", i)
		perArm[arm]++
	}

	require.Len(t, perArm, branches)
	for arm, n := range perArm {
		assert.GreaterOrEqual(t, n, count/branches, "arm %d", arm)
		assert.LessOrEqual(t, n, count/branches+1, "arm %d", arm)
	}
}

func TestGenerateWithoutJitterLiesOnSpiral(t *testing.T) {
	params := Parameters{Count: 50, Size: 0.02, Radius: 8, Branches: 4, Spin: 1.3, Randomness: 0}
	rng := &sequenceSource{values: []float64{0.1, 0.33, 0.5, 0.66, 0.9}}

	cloud, err := NewGenerator().Generate(params, rng)
	require.NoError(t, err)

	// replay the same radius draws: each star consumes one radius and three jitter values
	replay := &sequenceSource{values: rng.values}
	for i := 0; i < params.Count; i++ {
		r := replay.Float64() * float64(params.Radius)
		replay.Float64()
		replay.Float64()
		replay.Float64()
		angle := BranchAngle(i, params.Branches) + r*float64(params.Spin)

		assert.InDelta(t, math.Cos(angle)*r, cloud.Positions[i*3], 1e-4)
		assert.Equal(t, float32(0), cloud.Positions[i*3+1])
		assert.InDelta(t, math.Sin(angle)*r, cloud.Positions[i*3+2], 1e-4)
	}
}

func TestGenerateZeroRandomSourceIsOnSpiral(t *testing.T) {
	params := PresetClassic()
	params.Count = 9

	cloud, err := NewGenerator().Generate(params, constantSource(0))
	require.NoError(t, err)
	for _, v := range cloud.Positions {
		assert.Equal(t, float32(0), v)
	}
}

func TestGenerateZeroRadiusIsJitterOnly(t *testing.T) {
	params := Parameters{Count: 4, Size: 0.02, Radius: 0, Branches: 3, Spin: 2, Randomness: 2}

	cloud, err := NewGenerator().Generate(params, constantSource(0.5))
	require.NoError(t, err)
	for i := 0; i < params.Count; i++ {
		assert.InDelta(t, 1.0, cloud.Positions[i*3], 1e-6)
		assert.InDelta(t, 1.0, cloud.Positions[i*3+1], 1e-6)
		assert.InDelta(t, 1.0, cloud.Positions[i*3+2], 1e-6)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.String(), func(t *testing.T) {
			params := v.Preset()
			params.Count = 5000
			gen := NewGenerator(WithVariant(v))

			a, err := gen.Generate(params, NewRandomSource(42))
			require.NoError(t, err)
			b, err := gen.Generate(params, NewRandomSource(42))
			require.NoError(t, err)

			assert.Equal(t, a.Positions, b.Positions)
			assert.Equal(t, a.Colors, b.Colors)
		})
	}
}

func TestGenerateReturnsIndependentBuffers(t *testing.T) {
	params := PresetColored()
	params.Count = 10
	gen := NewGenerator(WithVariant(VariantColored))

	a, err := gen.Generate(params, NewRandomSource(9))
	require.NoError(t, err)
	b, err := gen.Generate(params, NewRandomSource(9))
	require.NoError(t, err)

	for i := range a.Positions {
		a.Positions[i] = 1000
		a.Colors[i] = 1000
	}
	assert.NotEqual(t, a.Positions, b.Positions)
	assert.NotEqual(t, a.Colors, b.Colors)
}

func TestGenerateDoesNotMutateParams(t *testing.T) {
	params := PresetColored()
	params.Count = 100
	before := params

	_, err := NewGenerator(WithVariant(VariantColored)).Generate(params, NewRandomSource(5))
	require.NoError(t, err)
	assert.Equal(t, before, params)
}

func TestGenerateConsumesDrawsInOrder(t *testing.T) {
	params := PresetClassic()
	params.Count = 10

	uniform := constantSource(0.25)
	_, err := NewGenerator().Generate(params, uniform)
	require.NoError(t, err)
	assert.Equal(t, 40, uniform.draws)

	power := constantSource(0.25)
	_, err = NewGenerator(WithJitterStrategy(PowerSignedJitter{})).Generate(params, power)
	require.NoError(t, err)
	assert.Equal(t, 70, power.draws)
}

func TestGenerateCopiesMaterialSettings(t *testing.T) {
	params := PresetClassic()
	params.Size = 0.3
	params.Color = colorful.Color{R: 0.5, G: 0.25, B: 1}

	cloud, err := NewGenerator().Generate(params, NewRandomSource(1))
	require.NoError(t, err)
	assert.Equal(t, float32(0.3), cloud.Size)
	assert.Equal(t, params.Color, cloud.Tint)
}

func TestGenerateRejectsInvalidParameters(t *testing.T) {
	valid := PresetClassic()

	cases := map[string]func(p *Parameters){
		"negative count":    func(p *Parameters) { p.Count = -1 },
		"zero branches":     func(p *Parameters) { p.Branches = 0 },
		"negative branches": func(p *Parameters) { p.Branches = -3 },
		"negative radius":   func(p *Parameters) { p.Radius = -0.5 },
		"zero size":         func(p *Parameters) { p.Size = 0 },
		"negative size":     func(p *Parameters) { p.Size = -1 },
		"NaN spin":          func(p *Parameters) { p.Spin = float32(math.NaN()) },
		"infinite radius":   func(p *Parameters) { p.Radius = float32(math.Inf(1)) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			cloud, err := NewGenerator().Generate(p, NewRandomSource(1))
			assert.Nil(t, cloud)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestGenerateRejectsNilRandomSource(t *testing.T) {
	_, err := NewGenerator().Generate(PresetClassic(), nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGeneratePowerJitterRequiresPositivePower(t *testing.T) {
	params := PresetColored()
	params.Count = 10
	params.RandomnessPower = 0

	_, err := NewGenerator(WithVariant(VariantColored)).Generate(params, NewRandomSource(1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// the uniform strategy ignores the power field
	_, err = NewGenerator(WithVariant(VariantClassic)).Generate(params, NewRandomSource(1))
	assert.NoError(t, err)
}

func TestBranchAngle(t *testing.T) {
	assert.Equal(t, 0.0, BranchAngle(0, 3))
	assert.InDelta(t, 2*math.Pi/3, BranchAngle(1, 3), 1e-12)
	assert.InDelta(t, 4*math.Pi/3, BranchAngle(2, 3), 1e-12)
	assert.Equal(t, 0.0, BranchAngle(3, 3))
	assert.Equal(t, 0.0, BranchAngle(5, 1))
}
