package shader

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Attribute describes a single in/out declaration of a shader stage: its
// location index, variable name, GLSL type, and the equivalent vertex format.
// Components is the scalar component count of the type (e.g. 3 for vec3),
// used to check type/arity matching between paired stages.
type Attribute struct {
	// Location is the numeric location index the host binds this attribute by.
	Location int
	// Name is the GLSL variable name, kept for diagnostics.
	Name string
	// TypeName is the GLSL type as written in the source (e.g. "vec3").
	TypeName string
	// Format is the equivalent wgpu vertex format for the GLSL type.
	Format wgpu.VertexFormat
	// Components is the number of scalar components in the type.
	Components int
	// Size is the byte size of the type.
	Size uint64
}

// SamplerBinding describes a combined image+sampler resource declaration:
// the numeric binding point the host attaches a texture to, and the variable name.
type SamplerBinding struct {
	// Binding is the numeric binding point index.
	Binding int
	// Name is the GLSL variable name, kept for diagnostics.
	Name string
}

// glslFormatInfo holds the wgpu vertex format, component count, and byte size for a GLSL type.
type glslFormatInfo struct {
	format     wgpu.VertexFormat
	components int
	size       uint64
}

// glslFormatMap maps GLSL attribute type names to their corresponding wgpu vertex format,
// component count, and byte size.
var glslFormatMap = map[string]glslFormatInfo{
	"float": {wgpu.VertexFormatFloat32, 1, 4},
	"vec2":  {wgpu.VertexFormatFloat32x2, 2, 8},
	"vec3":  {wgpu.VertexFormatFloat32x3, 3, 12},
	"vec4":  {wgpu.VertexFormatFloat32x4, 4, 16},
	"int":   {wgpu.VertexFormatSint32, 1, 4},
	"ivec2": {wgpu.VertexFormatSint32x2, 2, 8},
	"ivec3": {wgpu.VertexFormatSint32x3, 3, 12},
	"ivec4": {wgpu.VertexFormatSint32x4, 4, 16},
	"uint":  {wgpu.VertexFormatUint32, 1, 4},
	"uvec2": {wgpu.VertexFormatUint32x2, 2, 8},
	"uvec3": {wgpu.VertexFormatUint32x3, 3, 12},
	"uvec4": {wgpu.VertexFormatUint32x4, 4, 16},
}

// attributeDirection selects whether parseAttributes matches in or out declarations.
type attributeDirection string

const (
	attributeDirectionIn  attributeDirection = "in"
	attributeDirectionOut attributeDirection = "out"
)

var (
	// attributeRegex captures location, direction, type, and name from declarations like:
	// layout(location = 0) in vec3 inPosition;
	attributeRegex = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*(in|out)\s+(\w+)\s+(\w+)\s*;`)

	// samplerRegex captures binding and name from declarations like:
	// layout(binding = 0) uniform sampler2D texSampler;
	samplerRegex = regexp.MustCompile(`layout\s*\(\s*binding\s*=\s*(\d+)\s*\)\s*uniform\s+sampler2D\s+(\w+)\s*;`)

	// entryPointRegex captures the first function definition name, which for the
	// single-entry-point GLSL shaders handled here is always the entry point.
	entryPointRegex = regexp.MustCompile(`void\s+(\w+)\s*\(`)
)

// parseAttributes extracts all layout(location = N) declarations with the given
// direction from GLSL source. Declarations with GLSL types not present in
// glslFormatMap are skipped.
//
// Parameters:
//   - source: the raw GLSL source code string
//   - dir: the declaration direction to match (in or out)
//
// Returns:
//   - map[int]Attribute: attributes keyed by location index
func parseAttributes(source string, dir attributeDirection) map[int]Attribute {
	result := make(map[int]Attribute)
	cleaned := stripComments(source)

	matches := attributeRegex.FindAllStringSubmatch(cleaned, -1)
	for _, match := range matches {
		if match[2] != string(dir) {
			continue
		}
		location, _ := strconv.Atoi(match[1])
		typeName := match[3]
		name := match[4]

		info, ok := glslFormatMap[typeName]
		if !ok {
			continue
		}

		result[location] = Attribute{
			Location:   location,
			Name:       name,
			TypeName:   typeName,
			Format:     info.format,
			Components: info.components,
			Size:       info.size,
		}
	}

	return result
}

// parseSamplerBindings extracts all layout(binding = N) uniform sampler2D
// declarations from GLSL source.
//
// Parameters:
//   - source: the raw GLSL source code string
//
// Returns:
//   - map[int]SamplerBinding: sampler bindings keyed by binding point index
func parseSamplerBindings(source string) map[int]SamplerBinding {
	result := make(map[int]SamplerBinding)
	cleaned := stripComments(source)

	matches := samplerRegex.FindAllStringSubmatch(cleaned, -1)
	for _, match := range matches {
		binding, _ := strconv.Atoi(match[1])
		result[binding] = SamplerBinding{
			Binding: binding,
			Name:    match[2],
		}
	}

	return result
}

// parseEntryPoint extracts the entry point function name from GLSL source.
// Returns an empty string if no function definition is found.
//
// Parameters:
//   - source: the raw GLSL source code string
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string) string {
	cleaned := stripComments(source)
	if match := entryPointRegex.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// stripComments removes both line and block comments from GLSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from GLSL source so they
// do not interfere with declaration parsing.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from GLSL source.
// GLSL block comments do not nest.
func stripBlockComments(source string) string {
	var sb strings.Builder
	for {
		start := strings.Index(source, "/*")
		if start < 0 {
			sb.WriteString(source)
			break
		}
		sb.WriteString(source[:start])
		end := strings.Index(source[start+2:], "*/")
		if end < 0 {
			break
		}
		source = source[start+2+end+2:]
	}
	return sb.String()
}
