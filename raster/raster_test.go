package raster

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonite/softshade/binding"
	"github.com/halcyonite/softshade/common"
	"github.com/halcyonite/softshade/pipeline"
	"github.com/halcyonite/softshade/stage"
	"github.com/halcyonite/softshade/texture"
)

func triangleColorPipeline(opts ...pipeline.PipelineBuilderOption) pipeline.Pipeline {
	base := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexProgram(stage.NewTriangleVertexProgram()),
		pipeline.WithFragmentProgram(stage.NewColorFragmentProgram()),
	}
	return pipeline.NewPipeline("triangle", append(base, opts...)...)
}

// redTriangleVertices covers the three entries of the fixed position table
// with a uniform red color, so every covered pixel must read back pure red.
func redTriangleVertices() []stage.VertexInput {
	red := mgl32.Vec3{1, 0, 0}
	return []stage.VertexInput{
		{VertexIndex: 0, Color: red},
		{VertexIndex: 1, Color: red},
		{VertexIndex: 2, Color: red},
	}
}

func TestNewRasterizerWorkers(t *testing.T) {
	if got := NewRasterizer(WithWorkers(3)).Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
	if got := NewRasterizer(WithWorkers(0)).Workers(); got < 1 {
		t.Errorf("Workers() = %d, want at least 1", got)
	}
}

func TestDrawTriangle(t *testing.T) {
	target := NewTarget(64, 64)
	target.Clear(mgl32.Vec4{0, 0, 0, 1})

	r := NewRasterizer(WithWorkers(2))
	if err := r.Draw(triangleColorPipeline(), redTriangleVertices(), nil, target); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	red := mgl32.Vec4{1, 0, 0, 1}
	black := mgl32.Vec4{0, 0, 0, 1}

	// The fixed positions map to screen points (32,16), (48,48), (16,48);
	// a pixel near the centroid is covered, a corner pixel is not.
	if got := target.At(32, 37); got != red {
		t.Errorf("interior pixel = %v, want %v", got, red)
	}
	if got := target.At(2, 2); got != black {
		t.Errorf("corner pixel = %v, want untouched clear color %v", got, black)
	}
}

func TestDrawCulling(t *testing.T) {
	// The fixed triangle winds clockwise on screen, so with a CW front face it
	// survives back culling and is dropped by front culling. Flipping the
	// declared front face inverts that.
	tests := []struct {
		name      string
		frontFace wgpu.FrontFace
		cullMode  wgpu.CullMode
		wantDrawn bool
	}{
		{"cw front back cull", wgpu.FrontFaceCW, wgpu.CullModeBack, true},
		{"cw front front cull", wgpu.FrontFaceCW, wgpu.CullModeFront, false},
		{"ccw front back cull", wgpu.FrontFaceCCW, wgpu.CullModeBack, false},
		{"ccw front front cull", wgpu.FrontFaceCCW, wgpu.CullModeFront, true},
	}

	r := NewRasterizer(WithWorkers(2))
	for _, tt := range tests {
		target := NewTarget(64, 64)
		target.Clear(mgl32.Vec4{0, 0, 0, 1})

		p := triangleColorPipeline(
			pipeline.WithFrontFace(tt.frontFace),
			pipeline.WithCullMode(tt.cullMode),
		)
		if err := r.Draw(p, redTriangleVertices(), nil, target); err != nil {
			t.Fatalf("%s: Draw() = %v", tt.name, err)
		}

		drawn := target.At(32, 37) != mgl32.Vec4{0, 0, 0, 1}
		if drawn != tt.wantDrawn {
			t.Errorf("%s: drawn = %v, want %v", tt.name, drawn, tt.wantDrawn)
		}
	}
}

func TestDrawTexturedQuadRoundTrip(t *testing.T) {
	// A 4x4 texture with a distinct color in each corner texel.
	data := common.NewSolidTextureData(4, 4, [4]uint8{128, 128, 128, 255})
	setTexel := func(x, y uint32, rgba [4]uint8) {
		i := (y*4 + x) * 4
		copy(data.Pixels[i:i+4], rgba[:])
	}
	setTexel(0, 0, [4]uint8{255, 0, 0, 255})
	setTexel(3, 0, [4]uint8{0, 255, 0, 255})
	setTexel(0, 3, [4]uint8{0, 0, 255, 255})
	setTexel(3, 3, [4]uint8{255, 255, 255, 255})

	tex := texture.NewTexture("corners", data,
		texture.WithAddressModes(wgpu.AddressModeClampToEdge, wgpu.AddressModeClampToEdge),
		texture.WithFilterModes(wgpu.FilterModeNearest, wgpu.FilterModeNearest),
	)
	resources := binding.NewProvider("quad")
	resources.SetTexture(0, tex)

	// Two triangles covering the whole target, texture coordinates spanning [0, 1].
	quad := []stage.VertexInput{
		{Position: mgl32.Vec3{-1, -1, 0}, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, -1, 0}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 1, 0}, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-1, -1, 0}, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, 1, 0}, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-1, 1, 0}, TexCoord: mgl32.Vec2{0, 1}},
	}

	p := pipeline.NewPipeline("quad",
		pipeline.WithVertexProgram(stage.NewPassthroughVertexProgram()),
		pipeline.WithFragmentProgram(stage.NewTextureFragmentProgram()),
	)

	target := NewTarget(32, 32)
	r := NewRasterizer(WithWorkers(2))
	if err := r.Draw(p, quad, resources, target); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	// Each target corner pixel samples the matching corner texel of the texture.
	tests := []struct {
		name string
		x, y int
		want mgl32.Vec4
	}{
		{"top left", 0, 0, mgl32.Vec4{1, 0, 0, 1}},
		{"top right", 31, 0, mgl32.Vec4{0, 1, 0, 1}},
		{"bottom left", 0, 31, mgl32.Vec4{0, 0, 1, 1}},
		{"bottom right", 31, 31, mgl32.Vec4{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		if got := target.At(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawRejectsUnsatisfiedSamplerBinding(t *testing.T) {
	p := pipeline.NewPipeline("unbound",
		pipeline.WithVertexProgram(stage.NewPassthroughVertexProgram()),
		pipeline.WithFragmentProgram(stage.NewTextureFragmentProgram()),
	)

	r := NewRasterizer(WithWorkers(1))
	target := NewTarget(8, 8)

	err := r.Draw(p, []stage.VertexInput{{}, {}, {}}, nil, target)
	if err == nil {
		t.Fatal("Draw() = nil, want error for unbound sampler")
	}
	if !strings.Contains(err.Error(), "sampler binding 0") {
		t.Errorf("Draw() = %v, want an unbound sampler error", err)
	}

	// An empty provider is just as unsatisfied as a nil one.
	err = r.Draw(p, []stage.VertexInput{{}, {}, {}}, binding.NewProvider("empty"), target)
	if err == nil {
		t.Error("Draw() with empty provider = nil, want error for unbound sampler")
	}
}

func TestDrawRejectsUnsupportedTopology(t *testing.T) {
	p := triangleColorPipeline(pipeline.WithTopology(wgpu.PrimitiveTopologyLineList))

	r := NewRasterizer(WithWorkers(1))
	err := r.Draw(p, redTriangleVertices(), nil, NewTarget(8, 8))
	if err == nil {
		t.Fatal("Draw() = nil, want unsupported topology error")
	}
	if !strings.Contains(err.Error(), "topology") {
		t.Errorf("Draw() = %v, want an unsupported topology error", err)
	}
}

func TestDrawRejectsInvalidPipeline(t *testing.T) {
	r := NewRasterizer(WithWorkers(1))
	if err := r.Draw(pipeline.NewPipeline("empty"), nil, nil, NewTarget(8, 8)); err == nil {
		t.Error("Draw() = nil, want validation error for a pipeline with no programs")
	}
}

func TestDrawIgnoresTrailingPartialTriangle(t *testing.T) {
	target := NewTarget(64, 64)
	target.Clear(mgl32.Vec4{0, 0, 0, 1})

	// Two leftover vertices after the full triangle must not be drawn.
	vertices := append(redTriangleVertices(),
		stage.VertexInput{VertexIndex: 0, Color: mgl32.Vec3{0, 1, 0}},
		stage.VertexInput{VertexIndex: 1, Color: mgl32.Vec3{0, 1, 0}},
	)

	r := NewRasterizer(WithWorkers(2))
	if err := r.Draw(triangleColorPipeline(), vertices, nil, target); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	want := mgl32.Vec4{1, 0, 0, 1}
	if got := target.At(32, 37); got != want {
		t.Errorf("interior pixel = %v, want %v from the complete triangle only", got, want)
	}
}

func TestTargetClearAndReadback(t *testing.T) {
	target := NewTarget(4, 4)
	clear := mgl32.Vec4{0.8, 0.4, 0.7, 1.0}
	target.Clear(clear)

	// One 8-bit count of quantization error is allowed per channel.
	got := target.At(3, 3)
	for i := 0; i < 4; i++ {
		d := got[i] - clear[i]
		if d < -1.0/255 || d > 1.0/255 {
			t.Fatalf("At(3,3) = %v, want %v within one 8-bit count", got, clear)
		}
	}
}

func TestTargetEncodePNG(t *testing.T) {
	target := NewTarget(4, 4)
	target.Clear(mgl32.Vec4{1, 0, 0, 1})

	var buf bytes.Buffer
	if err := target.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding the encoded target: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %v, want 4x4", b)
	}
}

func TestNewTargetPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a non-positive target size")
		}
	}()
	NewTarget(0, 8)
}
