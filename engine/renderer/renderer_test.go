package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
	e.Buffer.Type = wgpu.BufferBindingTypeUniform
	e.Buffer.MinBindingSize = size
	return e
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex, 144)}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex, 48)}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(2, wgpu.ShaderStageFragment, 16),
			uniformEntry(0, wgpu.ShaderStageFragment, 48),
		}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageFragment, 16)}},
	}

	merged := MergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 3)

	assert.Equal(t, wgpu.ShaderStageVertex, merged[0].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[2].Entries[0].Visibility)

	shared := merged[1].Entries
	require.Len(t, shared, 2)
	assert.Equal(t, uint32(0), shared[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, shared[0].Visibility)
	assert.Equal(t, uint64(48), shared[0].Buffer.MinBindingSize)
	assert.Equal(t, uint32(2), shared[1].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, shared[1].Visibility)
}

func TestMergeBindGroupLayoutsEmpty(t *testing.T) {
	assert.Empty(t, MergeBindGroupLayouts(nil, nil))
}
