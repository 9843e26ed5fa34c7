// builtin.go embeds the library's GLSL shader sources and exposes parsed
// Shader values for them. The location and binding numbers declared in these
// sources are the wire format a host binds resources by; the stage package's
// built-in programs implement exactly these interfaces.
package shader

import _ "embed"

//go:embed sources/triangle.vert
var triangleVertSource string

//go:embed sources/passthrough.vert
var passthroughVertSource string

//go:embed sources/texture.frag
var textureFragSource string

//go:embed sources/color.frag
var colorFragSource string

// TriangleVertexShader returns the hardcoded-triangle vertex shader: it ignores
// the position attribute at location 0, selects one of three fixed positions by
// vertex index, and forwards the color attribute at location 1 to location 0.
//
// Returns:
//   - Shader: the parsed triangle vertex shader
func TriangleVertexShader() Shader {
	return NewShader("builtin/triangle.vert", ShaderTypeVertex, triangleVertSource)
}

// PassthroughVertexShader returns the passthrough vertex shader: the position
// attribute at location 0 is promoted to clip space with w=1 and the texture
// coordinate at location 1 is forwarded to location 0 unchanged.
//
// Returns:
//   - Shader: the parsed passthrough vertex shader
func PassthroughVertexShader() Shader {
	return NewShader("builtin/passthrough.vert", ShaderTypeVertex, passthroughVertSource)
}

// TextureFragmentShader returns the texture-sampling fragment shader: the
// combined image+sampler at binding 0 is sampled at the interpolated texture
// coordinate from location 0 and written to the color output at location 0.
//
// Returns:
//   - Shader: the parsed texture fragment shader
func TextureFragmentShader() Shader {
	return NewShader("builtin/texture.frag", ShaderTypeFragment, textureFragSource)
}

// ColorFragmentShader returns the color fragment shader: the interpolated
// vertex color from location 0 is promoted to RGBA with alpha 1 and written to
// the color output at location 0.
//
// Returns:
//   - Shader: the parsed color fragment shader
func ColorFragmentShader() Shader {
	return NewShader("builtin/color.frag", ShaderTypeFragment, colorFragSource)
}
