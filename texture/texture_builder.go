package texture

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyonite/softshade/common"
)

// TextureBuilderOption is a functional option used to configure a Texture during construction.
type TextureBuilderOption func(*texture)

// WithSamplerData sets the full sampler configuration for this texture.
//
// Parameters:
//   - sampler: the address modes and filter modes to apply on Sample
//
// Returns:
//   - TextureBuilderOption: a function that sets the sampler configuration for this texture
func WithSamplerData(sampler common.SamplerData) TextureBuilderOption {
	return func(t *texture) {
		t.sampler = sampler
	}
}

// WithAddressModes sets the address modes resolving texture coordinates outside [0, 1].
//
// Parameters:
//   - u: the address mode for the horizontal axis (e.g., wgpu.AddressModeRepeat, wgpu.AddressModeClampToEdge)
//   - v: the address mode for the vertical axis
//
// Returns:
//   - TextureBuilderOption: a function that sets the address modes for this texture
func WithAddressModes(u, v wgpu.AddressMode) TextureBuilderOption {
	return func(t *texture) {
		t.sampler.AddressModeU = u
		t.sampler.AddressModeV = v
	}
}

// WithFilterModes sets the magnification and minification filter modes.
//
// Parameters:
//   - mag: the filter used when the texture is magnified (e.g., wgpu.FilterModeNearest, wgpu.FilterModeLinear)
//   - min: the filter used when the texture is minified
//
// Returns:
//   - TextureBuilderOption: a function that sets the filter modes for this texture
func WithFilterModes(mag, min wgpu.FilterMode) TextureBuilderOption {
	return func(t *texture) {
		t.sampler.MagFilter = mag
		t.sampler.MinFilter = min
	}
}
