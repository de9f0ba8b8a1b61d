package shader

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which render stage a shader is written for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the lowercase stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and material binding.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a loaded and parsed WGSL shader. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors, vertex buffer layouts,
// and pre-processor declarations needed for pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - bindingKey: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group, or an empty descriptor if not set
	BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// These are the CPU-side descriptors extracted from the shader source which the
	// renderer turns into wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index, if it exists.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index for a given group and variable name, if it exists.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index associated with the variable name, or -1 if not found
	//   - bool: true if the variable name was found, false otherwise
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayout retrieves the vertex buffer layouts for an entry point parameter key.
	//
	// Parameters:
	//   - key: the integer key identifying the vertex layout
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts associated with the key, or nil if not set
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts associated with this shader.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: a map of keys to their corresponding vertex buffer layouts
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the pre-processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the group and provider annotations parsed from the shader source.
	// The scene uses them to match bindings with the camera and material buffers.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader creates a new Shader by reading WGSL source from disk.
// It panics if the file cannot be read or the source fails to pre-process.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage the shader is written for
//   - sourcePath: the file path to read WGSL source from
//
// Returns:
//   - Shader: a new Shader instance with the provided configuration
func NewShader(key string, shaderType ShaderType, sourcePath string) Shader {
	if sourcePath == "" {
		panic(fmt.Sprintf("shader: %s must have a valid source path", key))
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read source file %q: %v", sourcePath, err))
	}
	s, err := NewShaderFromSource(key, shaderType, string(data))
	if err != nil {
		panic(fmt.Sprintf("shader: %v", err))
	}
	return s
}

// NewShaderFromSource creates a new Shader from WGSL source held in memory, typically an
// embedded asset. Annotations are expanded before the entry point, vertex layouts and
// bind group layouts are parsed.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the shader is written for
//   - source: the raw WGSL source, possibly containing @oxy: annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if pre-processing fails or no entry point for the stage exists
func NewShaderFromSource(key string, shaderType ShaderType, source string) (Shader, error) {
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
		pp:                         NewPreProcessor(),
	}
	if err := s.parseSource(source); err != nil {
		return nil, fmt.Errorf("failed to parse %s shader %q: %w", shaderType, key, err)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[bindingKey]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	if s.bindingVarNames[group] == nil {
		return -1, false
	}
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

// parseSource pre-processes the WGSL source, builds the shader module descriptor, parses the
// entry point name, and extracts layout metadata. Vertex shaders get vertex buffer layouts parsed.
// Both stages get bind group layout descriptors parsed with their own visibility.
func (s *shader) parseSource(raw string) error {
	source, err := s.pp.Process(raw)
	if err != nil {
		return err
	}
	s.source = source
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return fmt.Errorf("no @%s entry point found", s.shaderType)
	}

	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(s.source)
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	default:
		visibility = wgpu.ShaderStageNone
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return nil
}
