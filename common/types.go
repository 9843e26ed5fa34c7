// package common contains common types that are used throughout this library. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureData holds decoded RGBA pixel data for a 2D texture resource.
// Pixels are stored row-major with 4 bytes per pixel (R, G, B, A).
type TextureData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerData holds the sampling configuration applied when a texture is read
// at a normalized coordinate. Coordinates outside [0, 1] are resolved by the
// address modes; texel lookup is resolved by the filter modes.
type SamplerData struct {
	// AddressModeU and AddressModeV specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V).
	AddressModeU, AddressModeV wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
}

// DecodeTextureData decodes PNG or JPEG image data from r into RGBA pixel data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - r: reader supplying the encoded image bytes
//
// Returns:
//   - TextureData: decoded RGBA pixel data with dimensions
//   - error: error if decoding fails
func DecodeTextureData(r io.Reader) (TextureData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return TextureData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// LoadTextureData opens the file at path and decodes it into RGBA pixel data.
//
// Parameters:
//   - path: file path of a PNG or JPEG image
//
// Returns:
//   - TextureData: decoded RGBA pixel data with dimensions
//   - error: error if the file cannot be opened or decoded
func LoadTextureData(path string) (TextureData, error) {
	file, err := os.Open(path)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	td, err := DecodeTextureData(file)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to decode texture file %s: %w", path, err)
	}
	return td, nil
}

// NewSolidTextureData creates texture data of the given size where every texel
// holds the same RGBA color.
//
// Parameters:
//   - width: texture width in pixels
//   - height: texture height in pixels
//   - rgba: the color assigned to every texel
//
// Returns:
//   - TextureData: the constructed pixel data
func NewSolidTextureData(width, height uint32, rgba [4]uint8) TextureData {
	pixels := make([]byte, width*height*4)
	for i := uint32(0); i < width*height; i++ {
		pixels[i*4+0] = rgba[0]
		pixels[i*4+1] = rgba[1]
		pixels[i*4+2] = rgba[2]
		pixels[i*4+3] = rgba[3]
	}
	return TextureData{Pixels: pixels, Width: width, Height: height}
}
