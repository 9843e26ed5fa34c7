package stage

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonite/softshade/binding"
	"github.com/halcyonite/softshade/common"
	"github.com/halcyonite/softshade/texture"
)

func TestPassthroughVertexProgram(t *testing.T) {
	prog := NewPassthroughVertexProgram()

	tests := []struct {
		name     string
		pos      mgl32.Vec3
		uv       mgl32.Vec2
		wantClip mgl32.Vec4
	}{
		{"origin", mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}, mgl32.Vec4{0, 0, 0, 1}},
		{"corner", mgl32.Vec3{-1, 1, 0.5}, mgl32.Vec2{1, 1}, mgl32.Vec4{-1, 1, 0.5, 1}},
		{"arbitrary", mgl32.Vec3{0.25, -0.75, 0.1}, mgl32.Vec2{0.3, 0.7}, mgl32.Vec4{0.25, -0.75, 0.1, 1}},
	}
	for _, tt := range tests {
		out := prog.Execute(VertexInput{Position: tt.pos, TexCoord: tt.uv})

		if out.ClipPosition != tt.wantClip {
			t.Errorf("%s: clip position = %v, want %v", tt.name, out.ClipPosition, tt.wantClip)
		}

		uv, ok := VaryingAt(out.Varyings, 0)
		if !ok {
			t.Fatalf("%s: no varying at location 0", tt.name)
		}
		if uv.Components != 2 {
			t.Errorf("%s: varying components = %d, want 2", tt.name, uv.Components)
		}
		if uv.Value.X() != tt.uv.X() || uv.Value.Y() != tt.uv.Y() {
			t.Errorf("%s: forwarded texcoord = %v, want %v", tt.name, uv.Value, tt.uv)
		}
	}
}

func TestTriangleVertexProgram(t *testing.T) {
	prog := NewTriangleVertexProgram()

	wantPositions := [3]mgl32.Vec4{
		{0.0, -0.5, 0, 1},
		{0.5, 0.5, 0, 1},
		{-0.5, 0.5, 0, 1},
	}
	colors := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for i := uint32(0); i < 3; i++ {
		// The position attribute is deliberately garbage: the program must ignore it.
		out := prog.Execute(VertexInput{
			VertexIndex: i,
			Position:    mgl32.Vec3{9, 9, 9},
			Color:       colors[i],
		})

		if out.ClipPosition != wantPositions[i] {
			t.Errorf("vertex %d: clip position = %v, want %v", i, out.ClipPosition, wantPositions[i])
		}

		rgb, ok := VaryingAt(out.Varyings, 0)
		if !ok {
			t.Fatalf("vertex %d: no varying at location 0", i)
		}
		if rgb.Components != 3 {
			t.Errorf("vertex %d: varying components = %d, want 3", i, rgb.Components)
		}
		want := mgl32.Vec4{colors[i].X(), colors[i].Y(), colors[i].Z(), 0}
		if rgb.Value != want {
			t.Errorf("vertex %d: forwarded color = %v, want %v", i, rgb.Value, want)
		}
	}
}

func TestTriangleVertexProgramPanicsOutOfRange(t *testing.T) {
	prog := NewTriangleVertexProgram()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for vertex index outside the fixed position table")
		}
	}()
	prog.Execute(VertexInput{VertexIndex: 3})
}

func TestTextureFragmentProgram(t *testing.T) {
	tex := texture.NewTexture("solid", common.NewSolidTextureData(2, 2, [4]uint8{255, 0, 0, 255}),
		texture.WithFilterModes(wgpu.FilterModeNearest, wgpu.FilterModeNearest),
	)
	resources := binding.NewProvider("test")
	resources.SetTexture(0, tex)

	prog := NewTextureFragmentProgram()
	out := prog.Execute(FragmentInput{
		Varyings:  []Varying{{Location: 0, Components: 2, Value: mgl32.Vec4{0.5, 0.5, 0, 0}}},
		Resources: resources,
	})

	want := mgl32.Vec4{1, 0, 0, 1}
	if out.Color != want {
		t.Errorf("color = %v, want %v", out.Color, want)
	}
}

func TestTextureFragmentProgramPanicsWithoutTexture(t *testing.T) {
	prog := NewTextureFragmentProgram()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an unpopulated sampler binding")
		}
	}()
	prog.Execute(FragmentInput{
		Varyings:  []Varying{{Location: 0, Components: 2}},
		Resources: binding.NewProvider("empty"),
	})
}

func TestColorFragmentProgram(t *testing.T) {
	prog := NewColorFragmentProgram()

	out := prog.Execute(FragmentInput{
		Varyings: []Varying{{Location: 0, Components: 3, Value: mgl32.Vec4{0.2, 0.4, 0.6, 0}}},
	})

	want := mgl32.Vec4{0.2, 0.4, 0.6, 1}
	if out.Color != want {
		t.Errorf("color = %v, want %v", out.Color, want)
	}
}

func TestVaryingAt(t *testing.T) {
	varyings := []Varying{
		{Location: 0, Components: 2},
		{Location: 3, Components: 4},
	}

	if v, ok := VaryingAt(varyings, 3); !ok || v.Components != 4 {
		t.Errorf("VaryingAt(3) = %+v, %v; want the location 3 varying", v, ok)
	}
	if _, ok := VaryingAt(varyings, 1); ok {
		t.Error("VaryingAt(1) found a varying at an undeclared location")
	}
}
