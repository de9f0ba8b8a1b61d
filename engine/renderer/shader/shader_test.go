package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `//@oxy:include camera
//@oxy:include points_material
//@oxy:include star_instance

//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform material points_material

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, star: StarInstance) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.projection * camera.view * vec4<f32>(star.position, 1.0);
    out.color = star.color * material.color.rgb;
    return out;
}
`

const testFragmentSource = `//@oxy:include points_material
//@oxy:group 1 0 storage_uniform material points_material

@fragment
fn fs_main(@location(0) color: vec3<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(color, material.color.a);
}
`

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("let x = 1;", 1)
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = parseAnnotation("  //@oxy:include star_instance", 3)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, annotationTypeInclude, a.Type)
	assert.Equal(t, []AnnotationArg{AnnotationArgStarInstance}, a.Args)
	assert.Equal(t, 3, a.Line)
	assert.Nil(t, a.Group)

	a, err = parseAnnotation("//@oxy:group 1 0 storage_uniform material points_material", 7)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, AnnotationTypeBindingGroup, a.Type)
	assert.Equal(t, 1, *a.Group)
	assert.Equal(t, 0, *a.Binding)
	assert.Equal(t, AnnotationArg("material"), a.Args[1])

	a, err = parseAnnotation("//@oxy:provider 1 0 material", 9)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, AnnotationTypeProvider, a.Type)
	assert.Equal(t, []AnnotationArg{AnnotationArgMaterial}, a.Args)
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", "//@oxy:"},
		{"unknown type", "//@oxy:texture 0 0"},
		{"include arity", "//@oxy:include"},
		{"unknown include", "//@oxy:include light"},
		{"group arity", "//@oxy:group 0 0 storage_uniform camera"},
		{"group number", "//@oxy:group x 0 storage_uniform camera camera"},
		{"negative binding", "//@oxy:group 0 -1 storage_uniform camera camera"},
		{"address space", "//@oxy:group 0 0 storage_read_write camera camera"},
		{"unknown group type", "//@oxy:group 0 0 storage_uniform lights array<light>"},
		{"provider identity", "//@oxy:provider 1 0 shadow"},
		{"provider arity", "//@oxy:provider 1 0 material diffuse_texture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 1)
			assert.Error(t, err)
			assert.Nil(t, a)
		})
	}
}

func TestPreProcessorProcess(t *testing.T) {
	pp := NewPreProcessor()
	assert.Nil(t, pp.Declarations())

	out, err := pp.Process(testVertexSource)
	require.NoError(t, err)

	assert.Contains(t, out, "struct CameraUniform {")
	assert.Contains(t, out, "struct StarInstance {")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;")
	assert.Contains(t, out, "@group(1) @binding(0) var<uniform> material: PointsMaterial;")
	assert.NotContains(t, out, "@oxy:")

	decls := pp.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, AnnotationArgCamera, decls[0].Args[2])
	assert.Equal(t, AnnotationArgPointsMaterial, decls[1].Args[2])

	_, err = pp.Process(testFragmentSource)
	require.NoError(t, err)
	assert.Len(t, pp.Declarations(), 1)
}

func TestPreProcessorRejectsBadAnnotation(t *testing.T) {
	_, err := NewPreProcessor().Process("//@oxy:include nope\n")
	assert.Error(t, err)
}

func TestNewShaderFromSourceVertex(t *testing.T) {
	s, err := NewShaderFromSource("galaxy_vertex", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "galaxy_vertex", s.Key())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	require.NotNil(t, s.Module())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)

	layouts := s.VertexLayout(0)
	require.Len(t, layouts, 1)
	assert.Len(t, s.VertexLayouts(), 1)
	assert.Equal(t, uint64(24), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[0].StepMode)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layouts[0].Attributes[1].Format)
	assert.Equal(t, uint64(12), layouts[0].Attributes[1].Offset)
	assert.Equal(t, uint32(1), layouts[0].Attributes[1].ShaderLocation)

	camera := s.BindGroupLayoutDescriptor(0)
	require.Len(t, camera.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, camera.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(144), camera.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, camera.Entries[0].Visibility)

	material := s.BindGroupLayoutDescriptor(1)
	require.Len(t, material.Entries, 1)
	assert.Equal(t, uint64(48), material.Entries[0].Buffer.MinBindingSize)

	assert.Equal(t, "camera", s.BindGroupVarName(0, 0))
	assert.Equal(t, "", s.BindGroupVarName(5, 0))
	binding, ok := s.BindGroupFromVarName(1, "material")
	assert.True(t, ok)
	assert.Equal(t, 0, binding)
	_, ok = s.BindGroupFromVarName(1, "missing")
	assert.False(t, ok)

	assert.Len(t, s.Declarations(), 2)
}

func TestNewShaderFromSourceFragment(t *testing.T) {
	s, err := NewShaderFromSource("galaxy_fragment", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())
	assert.Len(t, s.BindGroupLayoutDescriptors(), 1)
	assert.Equal(t, wgpu.ShaderStageFragment, s.BindGroupLayoutDescriptor(1).Entries[0].Visibility)
}

func TestNewShaderFromSourceMissingEntryPoint(t *testing.T) {
	_, err := NewShaderFromSource("broken", ShaderTypeFragment, testVertexSource)
	assert.ErrorContains(t, err, "entry point")
}

func TestNewShaderFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(testFragmentSource), 0o644))

	s := NewShader("frag", ShaderTypeFragment, path)
	assert.Equal(t, "fs_main", s.EntryPoint())

	assert.Panics(t, func() { NewShader("missing", ShaderTypeFragment, filepath.Join(t.TempDir(), "nope.wgsl")) })
	assert.Panics(t, func() { NewShader("empty", ShaderTypeFragment, "") })
}

func TestVertexStructWithoutSuffixStepsPerVertex(t *testing.T) {
	src := `struct QuadVertex {
    @location(0) corner: vec2<f32>,
}
@vertex
fn main(v: QuadVertex) -> @builtin(position) vec4<f32> {
    return vec4<f32>(v.corner, 0.0, 1.0);
}`
	layouts := parseVertexLayouts(src)
	require.Len(t, layouts, 1)
	assert.Equal(t, wgpu.VertexStepModeVertex, layouts[0][0].StepMode)
	assert.Equal(t, uint64(8), layouts[0][0].ArrayStride)
}

func TestStripComments(t *testing.T) {
	src := "a /* b /* nested */ c */ d // tail\ne"
	out := stripComments(src)
	assert.Equal(t, "a  d \ne", strings.TrimRight(out, "\n"))
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "unknown", ShaderType(9).String())
}
