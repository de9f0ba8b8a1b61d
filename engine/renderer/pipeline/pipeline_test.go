package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("default")

	assert.Equal(t, "default", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Equal(t, uint32(6), p.VerticesPerInstance())
	assert.Equal(t, AlphaBlendState(), p.BlendState())
	assert.Nil(t, p.Pipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
}

func TestAdditivePointsPipeline(t *testing.T) {
	p := NewPipeline("stars",
		WithAdditiveBlending(),
		WithDepthWriteEnabled(false),
		WithVerticesPerInstance(4),
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
	)

	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.Equal(t, uint32(4), p.VerticesPerInstance())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, p.Topology())

	blend := p.BlendState()
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, blend.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOne, blend.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, blend.Color.Operation)
}

func TestReleaseWithoutGPUPipeline(t *testing.T) {
	p := NewPipeline("unregistered")
	assert.NotPanics(t, p.Release)
}
