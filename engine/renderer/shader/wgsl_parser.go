package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec2i":     {wgpu.VertexFormatSint32x2, 8},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8},
	"vec3i":     {wgpu.VertexFormatSint32x3, 12},
	"vec3<i32>": {wgpu.VertexFormatSint32x3, 12},
	"vec4i":     {wgpu.VertexFormatSint32x4, 16},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2u":     {wgpu.VertexFormatUint32x2, 8},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec3u":     {wgpu.VertexFormatUint32x3, 12},
	"vec3<u32>": {wgpu.VertexFormatUint32x3, 12},
	"vec4u":     {wgpu.VertexFormatUint32x4, 16},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"vec2<f16>": {wgpu.VertexFormatFloat16x2, 4},
	"vec2h":     {wgpu.VertexFormatFloat16x2, 4},
	"vec4<f16>": {wgpu.VertexFormatFloat16x4, 8},
	"vec4h":     {wgpu.VertexFormatFloat16x4, 8},
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	// The type capture (.+) is greedy to handle parameterized types like array<T, N>.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseVertexLayouts extracts vertex buffer layouts from WGSL source code.
// It finds all structs that are pure vertex inputs (have @location attributes but no @builtin fields)
// and converts them into wgpu.VertexBufferLayout entries. Structs whose name ends in "Instance"
// step once per instance rather than once per vertex. Shaders with no vertex input structs return
// an empty map. Structs containing unrecognized WGSL types are skipped.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - map[int][]wgpu.VertexBufferLayout: vertex layouts keyed by sequential index
func parseVertexLayouts(source string) map[int][]wgpu.VertexBufferLayout {
	result := make(map[int][]wgpu.VertexBufferLayout)
	cleaned := stripLineComments(source)
	structs := parseStructBlocks(cleaned)

	layoutIndex := 0
	for _, ps := range structs {
		if !isVertexInputStruct(ps) {
			continue
		}
		layout, ok := buildVertexBufferLayout(ps)
		if !ok {
			continue
		}
		result[layoutIndex] = []wgpu.VertexBufferLayout{layout}
		layoutIndex++
	}

	return result
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) resource declarations from WGSL
// source and returns them as wgpu.BindGroupLayoutDescriptor values grouped by group index.
// Each descriptor's entries are sorted by binding index. The provided visibility flag is
// applied to all entries, corresponding to the shader stage that declared them.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - visibility: the shader stage visibility flag to set on each entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding index for resource tracking
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)
	cleaned := stripComments(source)

	// Parse all struct definitions and compute their sizes so we can set MinBindingSize
	// on buffer layout entries. This enables InitBindGroup to create correctly-sized GPU buffers.
	structs := parseStructBlocks(cleaned)
	structSizes := computeStructSizes(structs)

	matches := bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1)
	for _, match := range matches {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		varName := strings.TrimSpace(match[4])
		typeName := strings.TrimSpace(match[5])

		entry := classifyResource(uint32(binding), visibility, addressSpace)

		// Set MinBindingSize for buffer bindings by resolving the bound type's size.
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := resolveTypeLayout(typeName, structSizes); ok && layout.size > 0 {
				entry.Buffer.MinBindingSize = layout.size
			}
		}

		groups[group] = append(groups[group], entry)

		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = varName
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{
			Entries: entries,
		}
	}

	return result, varNames
}

// parseEntryPoint extracts the entry point function name for the given shader type
// from WGSL source. Returns an empty string if no matching entry point annotation is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - shaderType: the shader type to search for (ShaderTypeVertex or ShaderTypeFragment)
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		name := match[1]
		body := match[2]

		fields := parseStructFields(body)
		structs = append(structs, parsedStruct{
			name:   name,
			fields: fields,
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields,
// extracting @location and @builtin attributes along with the field name and type
//
// Parameters:
//   - body: the content between { and } of a struct declaration
//
// Returns:
//   - []parsedField: all fields found in the struct body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var field parsedField

		// check for @builtin
		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}

		// check for @location(N)
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			loc, err := strconv.Atoi(locMatch[1])
			if err == nil {
				field.location = loc
			}
		} else {
			field.location = -1
		}

		// extract field name and type
		if fm := fieldRegex.FindStringSubmatch(line); fm != nil {
			field.name = fm[1]
			field.typeName = strings.TrimSpace(fm[2])
		} else {
			continue
		}

		fields = append(fields, field)
	}

	return fields
}
