// annotations.go defines the annotation types, argument constants, and parser for the
// WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed with
// @oxy: that drive struct injection, bind group declaration, and resource provider
// registration. The parsed results are stored as Annotation values and consumed by the
// PreProcessor and the galaxy Scene to wire GPU resources to bind groups.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. It produces no declaration.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include star_instance
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The Scene reads
	// the struct type from the declaration to decide which buffer belongs to the binding.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The binding declaration stays hand-written below
	// the annotation.
	//
	// Syntax: //@oxy:provider <group> <binding> <provider_identity>
	//
	// Example: //@oxy:provider 1 0 material
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key (e.g. "camera")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "material")
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgStarInstance identifies the StarInstance per-instance vertex struct.
	// Source: engine/model/assets/star_instance.wgsl
	AnnotationArgStarInstance AnnotationArg = "star_instance"

	// AnnotationArgPointsMaterial identifies the PointsMaterial uniform struct.
	// Source: engine/renderer/material/assets/points_material.wgsl
	AnnotationArgPointsMaterial AnnotationArg = "points_material"
)

// ── Address space arguments ────────────────────────────────────────────────────

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Provider identity arguments ────────────────────────────────────────────────

const (
	// AnnotationArgMaterial identifies the material provider.
	AnnotationArgMaterial AnnotationArg = "material"
)

// validStructTypes lists the struct type arguments accepted by include and group annotations.
// Each entry must have a registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgStarInstance,
	AnnotationArgPointsMaterial,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgMaterial,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires exactly five arguments (group, binding, address space, var name, struct type)", lineNum)
		}
		groupInt, bindingInt, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			typeArg = strings.TrimSuffix(inner, ">")
		}
		if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, typeArg)
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) != 4 {
			return nil, fmt.Errorf("line %d: @oxy provider annotation requires exactly three arguments (group, binding, provider identity)", lineNum)
		}
		groupInt, bindingInt, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    []AnnotationArg{AnnotationArg(args[3])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

func parseGroupBinding(group, binding string, lineNum int) (int, int, error) {
	groupInt, err := strconv.Atoi(group)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, group, err)
	}
	bindingInt, err := strconv.Atoi(binding)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, binding, err)
	}
	if groupInt < 0 || bindingInt < 0 {
		return 0, 0, fmt.Errorf("line %d: negative group or binding index", lineNum)
	}
	return groupInt, bindingInt, nil
}
