package pipeline

import (
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for this pipeline.
//
// Parameters:
//   - s: the vertex shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex shader for this pipeline
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for this pipeline.
//
// Parameters:
//   - s: the fragment shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment shader for this pipeline
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled toggles depth testing.
//
// Parameters:
//   - enabled: whether fragments are tested against the depth buffer
//
// Returns:
//   - PipelineBuilderOption: a function that sets depth testing for this pipeline
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth writes.
// Additively blended particles disable writes so overlapping stars all contribute.
//
// Parameters:
//   - enabled: whether fragments write to the depth buffer
//
// Returns:
//   - PipelineBuilderOption: a function that sets depth writing for this pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled toggles color blending.
//
// Parameters:
//   - enabled: whether the configured BlendState is applied
//
// Returns:
//   - PipelineBuilderOption: a function that sets blending for this pipeline
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithAdditiveBlending enables blending with AdditiveBlendState.
//
// Returns:
//   - PipelineBuilderOption: a function that enables additive blending for this pipeline
func WithAdditiveBlending() PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		p.blendState = AdditiveBlendState()
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the color write mask.
//
// Parameters:
//   - writeMask: the color channels to write
//
// Returns:
//   - PipelineBuilderOption: a function that sets the write mask for this pipeline
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// WithBlendState sets a custom blend state. Blending must still be enabled with WithBlendEnabled.
//
// Parameters:
//   - blendState: the blend state
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}

// WithVerticesPerInstance sets how many vertices are drawn per instance.
//
// Parameters:
//   - n: the vertex count per instance, e.g. 6 for a two-triangle billboard
//
// Returns:
//   - PipelineBuilderOption: a function that sets the per-instance vertex count for this pipeline
func WithVerticesPerInstance(n uint32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.verticesPerInstance = n
	}
}
