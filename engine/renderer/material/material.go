package material

import (
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode selects how star fragments combine with what is already in the framebuffer.
type BlendMode int

const (
	// BlendNormal composites fragments with source-alpha blending.
	BlendNormal BlendMode = iota
	// BlendAdditive sums fragment colors so overlapping stars brighten.
	BlendAdditive
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	tint              colorful.Color
	opacity           float32
	size              float32
	sizeAttenuation   bool
	vertexColors      bool
	depthWrite        bool
	blending          BlendMode
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a points material, the surface description used to draw
// every star of a galaxy as a screen-facing square.
//
// Blending and depth properties are fixed at construction since they are baked into the pipeline.
// Size, tint and vertex colors follow the displayed cloud and can change between frames.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Tint retrieves the base color every star is multiplied by.
	//
	// Returns:
	//   - colorful.Color: the tint
	Tint() colorful.Color

	// Opacity retrieves the alpha written alongside the tint.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// Size retrieves the star size in world units at a depth of one framebuffer half-height.
	//
	// Returns:
	//   - float32: the star size
	Size() float32

	// SizeAttenuation reports whether star size shrinks with distance from the camera.
	//
	// Returns:
	//   - bool: true when size is divided by view depth
	SizeAttenuation() bool

	// VertexColors reports whether the per-star color multiplies the tint.
	//
	// Returns:
	//   - bool: true when per-star colors are used
	VertexColors() bool

	// DepthWrite reports whether star fragments write depth.
	//
	// Returns:
	//   - bool: the depth write flag
	DepthWrite() bool

	// Blending retrieves the framebuffer blend mode.
	//
	// Returns:
	//   - BlendMode: the blend mode
	Blending() BlendMode

	// Uniform builds the GPU uniform for the current framebuffer.
	// Size is multiplied by the pixel ratio while the attenuation scale uses the height in screen
	// coordinates, which keeps the apparent star size independent of display density.
	//
	// Parameters:
	//   - viewportWidth: framebuffer width in pixels
	//   - viewportHeight: framebuffer height in pixels
	//   - pixelRatio: device pixel ratio
	//
	// Returns:
	//   - GPUPointsMaterial: the packed uniform values
	Uniform(viewportWidth, viewportHeight int, pixelRatio float32) GPUPointsMaterial

	// SetSize sets the star size.
	//
	// Parameters:
	//   - size: the star size in world units
	SetSize(size float32)

	// SetTint sets the base color every star is multiplied by.
	//
	// Parameters:
	//   - tint: the tint
	SetTint(tint colorful.Color)

	// SetVertexColors toggles whether the per-star color multiplies the tint.
	//
	// Parameters:
	//   - enabled: true to use per-star colors
	SetVertexColors(enabled bool)

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new points Material configured with the provided options.
// Defaults are a white tint, size 0.01, size attenuation on, vertex colors off,
// no depth writes and additive blending.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:            "points",
		tint:            colorful.Color{R: 1, G: 1, B: 1},
		opacity:         1,
		size:            0.01,
		sizeAttenuation: true,
		blending:        BlendAdditive,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Tint() colorful.Color {
	return m.tint
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) Size() float32 {
	return m.size
}

func (m *material) SizeAttenuation() bool {
	return m.sizeAttenuation
}

func (m *material) VertexColors() bool {
	return m.vertexColors
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) Blending() BlendMode {
	return m.blending
}

func (m *material) Uniform(viewportWidth, viewportHeight int, pixelRatio float32) GPUPointsMaterial {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	var flags uint32
	if m.sizeAttenuation {
		flags |= PointsFlagSizeAttenuation
	}
	if m.vertexColors {
		flags |= PointsFlagVertexColors
	}
	return GPUPointsMaterial{
		Color:    [4]float32{float32(m.tint.R), float32(m.tint.G), float32(m.tint.B), m.opacity},
		Size:     m.size * pixelRatio,
		Scale:    float32(viewportHeight) / pixelRatio * 0.5,
		Viewport: [2]float32{float32(viewportWidth), float32(viewportHeight)},
		Flags:    flags,
	}
}

func (m *material) SetSize(size float32) {
	m.size = size
}

func (m *material) SetTint(tint colorful.Color) {
	m.tint = tint
}

func (m *material) SetVertexColors(enabled bool) {
	m.vertexColors = enabled
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
