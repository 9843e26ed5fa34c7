package texture

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonite/softshade/common"
)

// texture is the implementation of the Texture interface.
// It holds RGBA8 pixel data and the sampler configuration that governs reads.
type texture struct {
	key     string
	data    common.TextureData
	sampler common.SamplerData
}

// Texture defines the interface for a 2D combined image+sampler resource.
// The image data and the sampler configuration travel together: a stage that
// samples the texture has no say in how out-of-range coordinates wrap or how
// texels are filtered — both are resolved by the texture's own configuration.
type Texture interface {
	// Key retrieves the unique identifier for this texture, used for caching and lookups.
	//
	// Returns:
	//   - string: the texture's unique key
	Key() string

	// Width retrieves the texture width in pixels.
	//
	// Returns:
	//   - uint32: the width in pixels
	Width() uint32

	// Height retrieves the texture height in pixels.
	//
	// Returns:
	//   - uint32: the height in pixels
	Height() uint32

	// Sampler retrieves the sampler configuration governing reads of this texture.
	//
	// Returns:
	//   - common.SamplerData: the address modes and filter modes applied on Sample
	Sampler() common.SamplerData

	// Texel fetches the texel at integer coordinates (x, y) without filtering.
	// Coordinates outside the texture are clamped to the nearest edge texel.
	//
	// Parameters:
	//   - x: texel column
	//   - y: texel row
	//
	// Returns:
	//   - mgl32.Vec4: the texel color with each channel normalized to [0, 1]
	Texel(x, y int) mgl32.Vec4

	// Sample reads the texture at the normalized coordinate (u, v), resolving
	// out-of-range coordinates with the sampler's address modes and texel lookup
	// with its filter mode.
	//
	// Parameters:
	//   - u: horizontal texture coordinate, 0 at the left edge and 1 at the right
	//   - v: vertical texture coordinate, 0 at the top edge and 1 at the bottom
	//
	// Returns:
	//   - mgl32.Vec4: the sampled color with each channel normalized to [0, 1]
	Sample(u, v float32) mgl32.Vec4
}

var _ Texture = &texture{}

// NewTexture creates a new Texture from decoded RGBA pixel data with all
// specified options applied. The default sampler uses repeat addressing and
// linear filtering on both axes.
//
// Parameters:
//   - key: a unique identifier for the texture, used for caching and lookups
//   - data: decoded RGBA pixel data (4 bytes per texel, row-major)
//   - opts: a variadic list of TextureBuilderOption functions to configure the texture
//
// Returns:
//   - Texture: a new Texture instance with the provided configuration
func NewTexture(key string, data common.TextureData, opts ...TextureBuilderOption) Texture {
	key = common.Coalesce(key, "texture")
	if data.Width == 0 || data.Height == 0 {
		panic(fmt.Sprintf("texture: %s must have non-zero dimensions", key))
	}
	if uint32(len(data.Pixels)) < data.Width*data.Height*4 {
		panic(fmt.Sprintf("texture: %s pixel data is too short for %dx%d RGBA", key, data.Width, data.Height))
	}
	t := &texture{
		key:  key,
		data: data,
		sampler: common.SamplerData{
			AddressModeU: wgpu.AddressModeRepeat,
			AddressModeV: wgpu.AddressModeRepeat,
			MagFilter:    wgpu.FilterModeLinear,
			MinFilter:    wgpu.FilterModeLinear,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *texture) Key() string {
	return t.key
}

func (t *texture) Width() uint32 {
	return t.data.Width
}

func (t *texture) Height() uint32 {
	return t.data.Height
}

func (t *texture) Sampler() common.SamplerData {
	return t.sampler
}

func (t *texture) Texel(x, y int) mgl32.Vec4 {
	x = clampTexel(x, int(t.data.Width))
	y = clampTexel(y, int(t.data.Height))
	i := (y*int(t.data.Width) + x) * 4
	return mgl32.Vec4{
		float32(t.data.Pixels[i+0]) / 255,
		float32(t.data.Pixels[i+1]) / 255,
		float32(t.data.Pixels[i+2]) / 255,
		float32(t.data.Pixels[i+3]) / 255,
	}
}

func (t *texture) Sample(u, v float32) mgl32.Vec4 {
	if t.sampler.MagFilter == wgpu.FilterModeNearest {
		return t.sampleNearest(u, v)
	}
	return t.sampleLinear(u, v)
}

// sampleNearest fetches the single texel whose cell contains (u, v).
func (t *texture) sampleNearest(u, v float32) mgl32.Vec4 {
	x := wrapTexel(int(floor(u*float32(t.data.Width))), int(t.data.Width), t.sampler.AddressModeU)
	y := wrapTexel(int(floor(v*float32(t.data.Height))), int(t.data.Height), t.sampler.AddressModeV)
	return t.texelAt(x, y)
}

// sampleLinear performs bilinear filtering between the four texels surrounding
// (u, v). Neighbor texel indices are resolved with the address modes, so
// filtering across the texture edge wraps or clamps the same way direct
// out-of-range samples do.
func (t *texture) sampleLinear(u, v float32) mgl32.Vec4 {
	cu := u*float32(t.data.Width) - 0.5
	cv := v*float32(t.data.Height) - 0.5

	x0 := int(floor(cu))
	y0 := int(floor(cv))
	fu := cu - float32(x0)
	fv := cv - float32(y0)

	w := int(t.data.Width)
	h := int(t.data.Height)

	c00 := t.texelAt(wrapTexel(x0, w, t.sampler.AddressModeU), wrapTexel(y0, h, t.sampler.AddressModeV))
	c10 := t.texelAt(wrapTexel(x0+1, w, t.sampler.AddressModeU), wrapTexel(y0, h, t.sampler.AddressModeV))
	c01 := t.texelAt(wrapTexel(x0, w, t.sampler.AddressModeU), wrapTexel(y0+1, h, t.sampler.AddressModeV))
	c11 := t.texelAt(wrapTexel(x0+1, w, t.sampler.AddressModeU), wrapTexel(y0+1, h, t.sampler.AddressModeV))

	top := c00.Mul(1 - fu).Add(c10.Mul(fu))
	bottom := c01.Mul(1 - fu).Add(c11.Mul(fu))
	return top.Mul(1 - fv).Add(bottom.Mul(fv))
}

// texelAt fetches a texel whose indices are already resolved to [0, size).
func (t *texture) texelAt(x, y int) mgl32.Vec4 {
	i := (y*int(t.data.Width) + x) * 4
	return mgl32.Vec4{
		float32(t.data.Pixels[i+0]) / 255,
		float32(t.data.Pixels[i+1]) / 255,
		float32(t.data.Pixels[i+2]) / 255,
		float32(t.data.Pixels[i+3]) / 255,
	}
}

// wrapTexel resolves a possibly out-of-range texel index to [0, size) according
// to the address mode. Unknown modes fall back to clamping.
func wrapTexel(i, size int, mode wgpu.AddressMode) int {
	switch mode {
	case wgpu.AddressModeRepeat:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	case wgpu.AddressModeMirrorRepeat:
		period := 2 * size
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	default:
		return clampTexel(i, size)
	}
}

// clampTexel clamps a texel index to [0, size).
func clampTexel(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
