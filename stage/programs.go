package stage

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonite/softshade/shader"
)

// trianglePositions is the fixed position table of the hardcoded-triangle
// vertex program, indexed by vertex ordinal. Indexing it with a vertex index
// outside {0, 1, 2} panics; that is the inherent limit of the table, not a
// handled error.
var trianglePositions = [3]mgl32.Vec2{
	{0.0, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

// passthroughVertex implements the passthrough vertex program.
type passthroughVertex struct {
	shader shader.Shader
}

var _ VertexProgram = &passthroughVertex{}

// NewPassthroughVertexProgram creates the passthrough vertex program: the
// position attribute is promoted to homogeneous clip space with w=1 and no
// transformation applied, and the texture coordinate attribute is forwarded
// unchanged as the location-0 interpolant.
//
// Returns:
//   - VertexProgram: the passthrough vertex program
func NewPassthroughVertexProgram() VertexProgram {
	return &passthroughVertex{shader: shader.PassthroughVertexShader()}
}

func (p *passthroughVertex) Shader() shader.Shader {
	return p.shader
}

func (p *passthroughVertex) Execute(in VertexInput) VertexOutput {
	return VertexOutput{
		ClipPosition: mgl32.Vec4{in.Position.X(), in.Position.Y(), in.Position.Z(), 1.0},
		Varyings: []Varying{
			{Location: 0, Components: 2, Value: mgl32.Vec4{in.TexCoord.X(), in.TexCoord.Y(), 0, 0}},
		},
	}
}

// triangleVertex implements the hardcoded-triangle vertex program.
type triangleVertex struct {
	shader shader.Shader
}

var _ VertexProgram = &triangleVertex{}

// NewTriangleVertexProgram creates the hardcoded-triangle vertex program: the
// position attribute is ignored, one of three fixed 2D positions is selected
// by the vertex ordinal index and promoted to clip space with z=0 and w=1,
// and the color attribute is forwarded unchanged as the location-0 interpolant.
//
// Returns:
//   - VertexProgram: the hardcoded-triangle vertex program
func NewTriangleVertexProgram() VertexProgram {
	return &triangleVertex{shader: shader.TriangleVertexShader()}
}

func (p *triangleVertex) Shader() shader.Shader {
	return p.shader
}

func (p *triangleVertex) Execute(in VertexInput) VertexOutput {
	pos := trianglePositions[in.VertexIndex]
	return VertexOutput{
		ClipPosition: mgl32.Vec4{pos.X(), pos.Y(), 0.0, 1.0},
		Varyings: []Varying{
			{Location: 0, Components: 3, Value: mgl32.Vec4{in.Color.X(), in.Color.Y(), in.Color.Z(), 0}},
		},
	}
}

// textureFragment implements the texture-sampling fragment program.
type textureFragment struct {
	shader  shader.Shader
	binding int
}

var _ FragmentProgram = &textureFragment{}

// NewTextureFragmentProgram creates the texture-sampling fragment program: the
// location-0 interpolant is read as a texture coordinate and the texture bound
// at the shader's sampler binding point (binding 0) is sampled at it. How
// out-of-range coordinates wrap and how texels filter is the bound texture's
// own configuration, not this program's.
//
// Returns:
//   - FragmentProgram: the texture-sampling fragment program
func NewTextureFragmentProgram() FragmentProgram {
	s := shader.TextureFragmentShader()
	samplers := s.Samplers()
	if len(samplers) != 1 {
		panic(fmt.Sprintf("stage: %s must declare exactly one sampler binding, found %d", s.Key(), len(samplers)))
	}
	return &textureFragment{
		shader:  s,
		binding: samplers[0].Binding,
	}
}

func (p *textureFragment) Shader() shader.Shader {
	return p.shader
}

func (p *textureFragment) Execute(in FragmentInput) FragmentOutput {
	t := in.Resources.Texture(p.binding)
	if t == nil {
		panic(fmt.Sprintf("stage: %s invoked with no texture at binding %d", p.shader.Key(), p.binding))
	}
	uv, _ := VaryingAt(in.Varyings, 0)
	return FragmentOutput{
		Color: t.Sample(uv.Value.X(), uv.Value.Y()),
	}
}

// colorFragment implements the color pass-through fragment program.
type colorFragment struct {
	shader shader.Shader
}

var _ FragmentProgram = &colorFragment{}

// NewColorFragmentProgram creates the color fragment program: the location-0
// interpolant is read as an RGB color and written out with alpha 1. This is
// the fragment half of the hardcoded-triangle pair.
//
// Returns:
//   - FragmentProgram: the color fragment program
func NewColorFragmentProgram() FragmentProgram {
	return &colorFragment{shader: shader.ColorFragmentShader()}
}

func (p *colorFragment) Shader() shader.Shader {
	return p.shader
}

func (p *colorFragment) Execute(in FragmentInput) FragmentOutput {
	rgb, _ := VaryingAt(in.Varyings, 0)
	return FragmentOutput{
		Color: mgl32.Vec4{rgb.Value.X(), rgb.Value.Y(), rgb.Value.Z(), 1.0},
	}
}
