package shader

import (
	"fmt"
	"os"
	"sort"
)

// ShaderType identifies which pipeline stage a shader program belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, executed once per input vertex.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, executed once per rasterized fragment in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds the GLSL source and the interface metadata parsed from it.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string

	inputs   map[int]Attribute
	outputs  map[int]Attribute
	samplers map[int]SamplerBinding
}

// Shader defines the interface for a loaded and parsed GLSL shader stage. It exposes the
// shader's unique key, source code, entry point, and the numeric interface contract parsed
// from the source: input attribute locations, output interpolant locations, and sampler
// binding points. These numbers are how a host wires resources to the stage, so they are
// surfaced as data rather than left implicit in the source text.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the GLSL shader source code.
	//
	// Returns:
	//   - string: the GLSL source code of the shader
	Source() string

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point function name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "main")
	EntryPoint() string

	// Input retrieves the input attribute declared at the given location, if any.
	//
	// Parameters:
	//   - location: the attribute location index
	//
	// Returns:
	//   - Attribute: the attribute declared at the location
	//   - bool: true if an input is declared at the location, false otherwise
	Input(location int) (Attribute, bool)

	// Inputs retrieves all declared input attributes sorted by location.
	//
	// Returns:
	//   - []Attribute: the shader's input attributes in location order
	Inputs() []Attribute

	// Output retrieves the output attribute declared at the given location, if any.
	//
	// Parameters:
	//   - location: the output location index
	//
	// Returns:
	//   - Attribute: the attribute declared at the location
	//   - bool: true if an output is declared at the location, false otherwise
	Output(location int) (Attribute, bool)

	// Outputs retrieves all declared output attributes sorted by location.
	// For a vertex shader these are the interpolants forwarded to the rasterizer;
	// for a fragment shader they are the color outputs written to the render target.
	//
	// Returns:
	//   - []Attribute: the shader's output attributes in location order
	Outputs() []Attribute

	// Sampler retrieves the combined image+sampler binding declared at the given
	// binding point, if any.
	//
	// Parameters:
	//   - binding: the binding point index
	//
	// Returns:
	//   - SamplerBinding: the sampler declared at the binding point
	//   - bool: true if a sampler is declared at the binding point, false otherwise
	Sampler(binding int) (SamplerBinding, bool)

	// Samplers retrieves all declared sampler bindings sorted by binding point.
	//
	// Returns:
	//   - []SamplerBinding: the shader's sampler bindings in binding order
	Samplers() []SamplerBinding
}

var _ Shader = &shader{}

// NewShader creates a new Shader by parsing the provided GLSL source.
// The interface metadata (attribute locations, sampler bindings, entry point)
// is extracted from the source at construction time.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the type of shader (vertex or fragment)
//   - source: the GLSL source code
//
// Returns:
//   - Shader: a new Shader instance with parsed interface metadata
func NewShader(key string, shaderType ShaderType, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s must have a non-empty source", key))
	}
	s := &shader{
		key:        key,
		shaderType: shaderType,
	}
	s.parseSource(source)
	return s
}

// NewShaderFromPath creates a new Shader by reading and parsing GLSL source from a file.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the type of shader (vertex or fragment)
//   - sourcePath: the file path to read GLSL source from
//
// Returns:
//   - Shader: a new Shader instance with parsed interface metadata
func NewShaderFromPath(key string, shaderType ShaderType, sourcePath string) Shader {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read source file %q: %v", sourcePath, err))
	}
	return NewShader(key, shaderType, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Input(location int) (Attribute, bool) {
	a, ok := s.inputs[location]
	return a, ok
}

func (s *shader) Inputs() []Attribute {
	return sortedAttributes(s.inputs)
}

func (s *shader) Output(location int) (Attribute, bool) {
	a, ok := s.outputs[location]
	return a, ok
}

func (s *shader) Outputs() []Attribute {
	return sortedAttributes(s.outputs)
}

func (s *shader) Sampler(binding int) (SamplerBinding, bool) {
	b, ok := s.samplers[binding]
	return b, ok
}

func (s *shader) Samplers() []SamplerBinding {
	result := make([]SamplerBinding, 0, len(s.samplers))
	for _, b := range s.samplers {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Binding < result[j].Binding
	})
	return result
}

// parseSource stores the GLSL source and extracts the stage interface metadata:
// entry point name, input/output attribute locations, and sampler binding points.
func (s *shader) parseSource(source string) {
	s.source = source
	s.entryPoint = parseEntryPoint(source)
	s.inputs = parseAttributes(source, attributeDirectionIn)
	s.outputs = parseAttributes(source, attributeDirectionOut)
	s.samplers = parseSamplerBindings(source)
}

// sortedAttributes flattens a location-keyed attribute map into a slice sorted by location.
func sortedAttributes(attrs map[int]Attribute) []Attribute {
	result := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Location < result[j].Location
	})
	return result
}
