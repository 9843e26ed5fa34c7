// Package stage models the per-invocation records of the two programmable
// pipeline stages and provides the library's built-in stage programs. A stage
// program is a pure function over one input record: it holds no state across
// invocations and has no error channel — resource and layout mismatches are
// the host's responsibility.
package stage

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonite/softshade/binding"
	"github.com/halcyonite/softshade/shader"
)

// VertexInput is the input record for one vertex shader invocation. It carries
// the union of the attributes the built-in vertex programs declare; each
// program reads only the attributes its shader interface names.
type VertexInput struct {
	// VertexIndex is the ordinal index of this vertex within the draw call.
	VertexIndex uint32

	// Position is the object-space position attribute (location 0).
	Position mgl32.Vec3

	// Color is the per-vertex color attribute (location 1, hardcoded-triangle variant).
	Color mgl32.Vec3

	// TexCoord is the texture coordinate attribute (location 1, passthrough variant).
	TexCoord mgl32.Vec2
}

// Varying is one located interpolant: a per-vertex output value that the
// rasterizer interpolates across a primitive before handing it to the
// fragment stage. Components records the scalar arity of the declared GLSL
// type; unused trailing components of Value are zero.
type Varying struct {
	// Location is the numeric interpolant location matching the shader declarations.
	Location int

	// Components is the number of meaningful scalar components in Value.
	Components int

	// Value holds the interpolant packed into a vec4.
	Value mgl32.Vec4
}

// VertexOutput is the output record of one vertex shader invocation: a
// homogeneous clip-space position plus the varyings forwarded for interpolation.
type VertexOutput struct {
	// ClipPosition is the clip-space position in homogeneous coordinates.
	ClipPosition mgl32.Vec4

	// Varyings are the located interpolants forwarded to the rasterizer.
	Varyings []Varying
}

// FragmentInput is the input record for one fragment shader invocation: the
// rasterizer-interpolated varyings plus the resource table the host bound.
type FragmentInput struct {
	// Varyings are the interpolated values at this fragment's position.
	Varyings []Varying

	// Resources is the binding table supplying textures by binding point.
	Resources binding.Provider
}

// FragmentOutput is the output record of one fragment shader invocation: a
// single RGBA color written to output location 0 of the render target.
type FragmentOutput struct {
	// Color is the fragment color with channels in [0, 1].
	Color mgl32.Vec4
}

// VertexProgram defines the interface for a vertex stage program: a stateless
// function executed once per input vertex, paired with the shader metadata
// declaring its attribute and interpolant interface.
type VertexProgram interface {
	// Shader retrieves the shader metadata describing this program's interface.
	//
	// Returns:
	//   - shader.Shader: the parsed shader this program implements
	Shader() shader.Shader

	// Execute runs the program for a single vertex.
	//
	// Parameters:
	//   - in: the input record for this invocation
	//
	// Returns:
	//   - VertexOutput: the clip-space position and forwarded varyings
	Execute(in VertexInput) VertexOutput
}

// FragmentProgram defines the interface for a fragment stage program: a
// stateless function executed once per rasterized fragment, paired with the
// shader metadata declaring its interpolant and binding interface.
type FragmentProgram interface {
	// Shader retrieves the shader metadata describing this program's interface.
	//
	// Returns:
	//   - shader.Shader: the parsed shader this program implements
	Shader() shader.Shader

	// Execute runs the program for a single fragment.
	//
	// Parameters:
	//   - in: the input record for this invocation
	//
	// Returns:
	//   - FragmentOutput: the color written to output location 0
	Execute(in FragmentInput) FragmentOutput
}

// VaryingAt retrieves the varying at the given location from a varying slice.
//
// Parameters:
//   - varyings: the varyings to search
//   - location: the interpolant location to find
//
// Returns:
//   - Varying: the varying at the location
//   - bool: true if a varying with the location exists, false otherwise
func VaryingAt(varyings []Varying, location int) (Varying, bool) {
	for _, v := range varyings {
		if v.Location == location {
			return v, true
		}
	}
	return Varying{}, false
}
