package galaxy

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformJitterIsNonNegative(t *testing.T) {
	params := Parameters{Randomness: 1.5}
	rng := NewRandomSource(11)

	for i := 0; i < 1000; i++ {
		x, y, z := UniformJitter{}.Jitter(rng, params)
		for _, v := range []float32{x, y, z} {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1.5))
		}
	}
}

func TestUniformJitterScalesByRandomness(t *testing.T) {
	x, y, z := UniformJitter{}.Jitter(&sequenceSource{values: []float64{0.1, 0.5, 0.9}}, Parameters{Randomness: 2})
	assert.InDelta(t, 0.2, x, 1e-6)
	assert.InDelta(t, 1.0, y, 1e-6)
	assert.InDelta(t, 1.8, z, 1e-6)
}

func TestPowerSignedJitterScriptedDraws(t *testing.T) {
	// per axis: magnitude draw, then sign draw (< 0.5 is positive)
	rng := &sequenceSource{values: []float64{0.5, 0.1, 0.5, 0.9, 0.8, 0.3}}
	x, y, z := PowerSignedJitter{}.Jitter(rng, Parameters{RandomnessPower: 2})

	assert.InDelta(t, 0.25, x, 1e-6)
	assert.InDelta(t, -0.25, y, 1e-6)
	assert.InDelta(t, 0.64, z, 1e-6)
	assert.Equal(t, 6, rng.draws)
}

func TestPowerSignedJitterDistribution(t *testing.T) {
	rng := NewRandomSource(2024)
	params := Parameters{RandomnessPower: 3}

	var positive, negative, nearZero int
	const n = 30000
	for i := 0; i < n; i++ {
		x, _, _ := PowerSignedJitter{}.Jitter(rng, params)
		require.LessOrEqual(t, math.Abs(float64(x)), 1.0)
		if x >= 0 {
			positive++
		} else {
			negative++
		}
		if math.Abs(float64(x)) < 0.125 {
			nearZero++
		}
	}

	// fair sign
	assert.InDelta(t, 0.5, float64(positive)/n, 0.02)
	assert.InDelta(t, 0.5, float64(negative)/n, 0.02)
	// |x| < 0.125 iff u < 0.5 when the power is 3
	assert.InDelta(t, 0.5, float64(nearZero)/n, 0.02)
}

func TestPowerSignedJitterValidate(t *testing.T) {
	assert.NoError(t, PowerSignedJitter{}.Validate(Parameters{RandomnessPower: 0.1}))
	assert.ErrorIs(t, PowerSignedJitter{}.Validate(Parameters{RandomnessPower: 0}), ErrInvalidParameter)
	assert.ErrorIs(t, PowerSignedJitter{}.Validate(Parameters{RandomnessPower: -1}), ErrInvalidParameter)
	assert.ErrorIs(t, PowerSignedJitter{}.Validate(Parameters{RandomnessPower: float32(math.NaN())}), ErrInvalidParameter)
}

func TestJitterStrategyByName(t *testing.T) {
	j, err := JitterStrategyByName("uniform")
	require.NoError(t, err)
	assert.Equal(t, UniformJitter{}, j)

	j, err = JitterStrategyByName("power")
	require.NoError(t, err)
	assert.Equal(t, PowerSignedJitter{}, j)

	_, err = JitterStrategyByName("gaussian")
	assert.Error(t, err)
}

func TestRadiusGradientInterpolatesByRadius(t *testing.T) {
	params := Parameters{
		Radius:       10,
		InsideColor:  colorful.Color{R: 0, G: 0, B: 0},
		OutsideColor: colorful.Color{R: 1, G: 0.5, B: 0.25},
	}

	assert.Equal(t, params.InsideColor, RadiusGradient{}.Color(params, 0))

	mid := RadiusGradient{}.Color(params, 5)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.25, mid.G, 1e-9)
	assert.InDelta(t, 0.125, mid.B, 1e-9)

	outer := RadiusGradient{}.Color(params, 10)
	assert.InDelta(t, 1, outer.R, 1e-9)
}

func TestRadiusGradientZeroRadiusUsesInsideColor(t *testing.T) {
	params := Parameters{InsideColor: MustHex("#ff6030"), OutsideColor: MustHex("#1b3984")}
	assert.Equal(t, params.InsideColor, RadiusGradient{}.Color(params, 0))
}

func TestGenerateGradientColors(t *testing.T) {
	params := Parameters{
		Count: 2, Size: 0.01, Radius: 4, Branches: 2, RandomnessPower: 3,
		InsideColor:  colorful.Color{R: 1, G: 1, B: 1},
		OutsideColor: colorful.Color{R: 0, G: 0, B: 0},
	}
	// star 0 radius draw 0.25, star 1 radius draw 0.75; jitter draws reuse the list
	rng := &sequenceSource{values: []float64{0.25, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.75, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}}

	cloud, err := NewGenerator(WithVariant(VariantColored)).Generate(params, rng)
	require.NoError(t, err)
	require.Len(t, cloud.Colors, 6)
	assert.InDelta(t, 0.75, cloud.Colors[0], 1e-6)
	assert.InDelta(t, 0.75, cloud.Colors[2], 1e-6)
	assert.InDelta(t, 0.25, cloud.Colors[3], 1e-6)
	assert.InDelta(t, 0.25, cloud.Colors[5], 1e-6)
}

func TestNoColorLeavesColorsNil(t *testing.T) {
	assert.False(t, NoColor{}.Enabled())
	cloud, err := NewGenerator(WithColorStrategy(NoColor{})).Generate(PresetClassic(), NewRandomSource(1))
	require.NoError(t, err)
	assert.False(t, cloud.HasColors())
}

func TestColorStrategyByName(t *testing.T) {
	c, err := ColorStrategyByName("gradient")
	require.NoError(t, err)
	assert.True(t, c.Enabled())

	c, err = ColorStrategyByName("none")
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	_, err = ColorStrategyByName("rainbow")
	assert.Error(t, err)
}

func TestMustHexPanicsOnMalformedInput(t *testing.T) {
	assert.Panics(t, func() { MustHex("not-a-color") })
	assert.NotPanics(t, func() { MustHex("#1b3984") })
}

func TestVariants(t *testing.T) {
	v, err := ParseVariant(" Colored ")
	require.NoError(t, err)
	assert.Equal(t, VariantColored, v)
	assert.Equal(t, "colored", v.String())
	assert.Equal(t, PowerSignedJitter{}, v.JitterStrategy())
	assert.Equal(t, RadiusGradient{}, v.ColorStrategy())
	assert.Equal(t, 100000, v.Preset().Count)

	v, err = ParseVariant("classic")
	require.NoError(t, err)
	assert.Equal(t, UniformJitter{}, v.JitterStrategy())
	assert.Equal(t, NoColor{}, v.ColorStrategy())
	assert.Equal(t, PresetClassic(), v.Preset())

	_, err = ParseVariant("spiral")
	assert.Error(t, err)
	assert.Equal(t, "Variant(7)", Variant(7).String())
}

func TestPresetsAreValid(t *testing.T) {
	for _, v := range Variants {
		assert.NoError(t, v.Preset().Validate(), v.String())
		assert.NoError(t, v.JitterStrategy().Validate(v.Preset()), v.String())
	}
}
