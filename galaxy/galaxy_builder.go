package galaxy

// GeneratorBuilderOption is a functional option for configuring a Generator.
type GeneratorBuilderOption func(*generator)

// WithJitterStrategy sets the per-axis jitter strategy.
// A nil strategy is ignored.
//
// Parameters:
//   - j: the jitter strategy
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the strategy to a generator
func WithJitterStrategy(j JitterStrategy) GeneratorBuilderOption {
	return func(g *generator) {
		if j != nil {
			g.jitter = j
		}
	}
}

// WithColorStrategy sets the per-star color strategy.
// A nil strategy is ignored.
//
// Parameters:
//   - c: the color strategy
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the strategy to a generator
func WithColorStrategy(c ColorStrategy) GeneratorBuilderOption {
	return func(g *generator) {
		if c != nil {
			g.color = c
		}
	}
}

// WithVariant configures both strategies to match a Variant.
//
// Parameters:
//   - v: the variant
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the variant's strategies to a generator
func WithVariant(v Variant) GeneratorBuilderOption {
	return func(g *generator) {
		g.jitter = v.JitterStrategy()
		g.color = v.ColorStrategy()
	}
}
