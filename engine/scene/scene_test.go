package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galaxyShaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.NewShaderFromSource("galaxy_vertex", shader.ShaderTypeVertex, galaxyVertexSource)
	require.NoError(t, err)
	fs, err := shader.NewShaderFromSource("galaxy_fragment", shader.ShaderTypeFragment, galaxyFragmentSource)
	require.NoError(t, err)
	return vs, fs
}

func TestGalaxyShadersLayout(t *testing.T) {
	vs, fs := galaxyShaders(t)

	layouts := vs.VertexLayout(0)
	require.Len(t, layouts, 1)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[0].StepMode)
	assert.Equal(t, uint64(24), layouts[0].ArrayStride)

	merged := renderer.MergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	require.Len(t, merged, 2)
	assert.Equal(t, wgpu.ShaderStageVertex, merged[0].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[1].Entries[0].Visibility)
	assert.Equal(t, uint64(144), merged[0].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(48), merged[1].Entries[0].Buffer.MinBindingSize)
}

func TestResolveBindGroups(t *testing.T) {
	vs, fs := galaxyShaders(t)
	cam := bind_group_provider.NewBindGroupProvider("camera")
	mat := bind_group_provider.NewBindGroupProvider("points")

	var decls []shader.Annotation
	decls = append(decls, vs.Declarations()...)
	decls = append(decls, fs.Declarations()...)

	res, err := resolveBindGroups(decls, cam, mat)
	require.NoError(t, err)
	require.Len(t, res.providers, 2)
	assert.Same(t, cam, res.providers[0])
	assert.Same(t, mat, res.providers[1])
	assert.Equal(t, 0, res.cameraBinding)
	assert.Equal(t, 0, res.materialBinding)
}

func TestResolveBindGroupsErrors(t *testing.T) {
	cam := bind_group_provider.NewBindGroupProvider("camera")
	mat := bind_group_provider.NewBindGroupProvider("points")

	gap, err := shader.NewShaderFromSource("gap", shader.ShaderTypeFragment, `//@oxy:include points_material
//@oxy:group 2 0 storage_uniform material points_material
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return material.color;
}`)
	require.NoError(t, err)
	_, err = resolveBindGroups(gap.Declarations(), cam, mat)
	assert.ErrorContains(t, err, "contiguous")

	clash, err := shader.NewShaderFromSource("clash", shader.ShaderTypeVertex, `//@oxy:include camera
//@oxy:include points_material
//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 0 1 storage_uniform material points_material
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return camera.projection * material.color;
}`)
	require.NoError(t, err)
	_, err = resolveBindGroups(clash.Declarations(), cam, mat)
	assert.ErrorContains(t, err, "claimed")
}

func TestNewStarPipeline(t *testing.T) {
	vs, fs := galaxyShaders(t)

	p := newStarPipeline("stars", vs, fs, material.NewMaterial())
	assert.Equal(t, "stars", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, uint32(6), p.VerticesPerInstance())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorOne, p.BlendState().Color.DstFactor)
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))

	p = newStarPipeline("normal", vs, fs, material.NewMaterial(
		material.WithBlending(material.BlendNormal),
		material.WithDepthWrite(true),
	))
	assert.True(t, p.DepthWriteEnabled())
	assert.NotEqual(t, wgpu.BlendFactorOne, p.BlendState().Color.DstFactor)
}
