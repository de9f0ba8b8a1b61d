package material

import (
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/lucasb-eyer/go-colorful"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTint is an option builder that sets the color every star is multiplied by.
//
// Parameters:
//   - tint: the tint color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the tint option to a material
func WithTint(tint colorful.Color) MaterialBuilderOption {
	return func(m *material) {
		m.tint = tint
	}
}

// WithOpacity is an option builder that sets the material opacity, clamped to [0, 1].
//
// Parameters:
//   - opacity: the alpha value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = min(max(opacity, 0), 1)
	}
}

// WithSize is an option builder that sets the star size.
//
// Parameters:
//   - size: the star size in world units
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size option to a material
func WithSize(size float32) MaterialBuilderOption {
	return func(m *material) {
		m.size = size
	}
}

// WithSizeAttenuation is an option builder that toggles distance-based size falloff.
//
// Parameters:
//   - enabled: whether star size shrinks with depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the attenuation option to a material
func WithSizeAttenuation(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.sizeAttenuation = enabled
	}
}

// WithVertexColors is an option builder that toggles per-star colors.
//
// Parameters:
//   - enabled: whether per-star colors multiply the tint
//
// Returns:
//   - MaterialBuilderOption: a function that applies the vertex color option to a material
func WithVertexColors(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexColors = enabled
	}
}

// WithDepthWrite is an option builder that toggles depth writes.
//
// Parameters:
//   - enabled: whether star fragments write depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth write option to a material
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthWrite = enabled
	}
}

// WithBlending is an option builder that sets the framebuffer blend mode.
//
// Parameters:
//   - mode: the blend mode
//
// Returns:
//   - MaterialBuilderOption: a function that applies the blend option to a material
func WithBlending(mode BlendMode) MaterialBuilderOption {
	return func(m *material) {
		m.blending = mode
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that attaches GPU resources to the material.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
