package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// target is the implementation of the Target interface.
// Pixels are stored in an image.RGBA so the result can be inspected or encoded directly.
type target struct {
	img    *image.RGBA
	width  int
	height int
}

// Target defines the interface for a render target: the color attachment at
// output location 0 that fragment program results are written to.
type Target interface {
	// Width retrieves the target width in pixels.
	//
	// Returns:
	//   - int: the width in pixels
	Width() int

	// Height retrieves the target height in pixels.
	//
	// Returns:
	//   - int: the height in pixels
	Height() int

	// Clear fills the entire target with the given color.
	//
	// Parameters:
	//   - c: the clear color with channels in [0, 1]
	Clear(c mgl32.Vec4)

	// At reads back the color stored at pixel (x, y).
	//
	// Parameters:
	//   - x: pixel column
	//   - y: pixel row
	//
	// Returns:
	//   - mgl32.Vec4: the stored color with channels normalized to [0, 1]
	At(x, y int) mgl32.Vec4

	// Image returns the backing image holding the rendered content.
	//
	// Returns:
	//   - *image.RGBA: the backing image
	Image() *image.RGBA

	// EncodePNG writes the target contents to w as a PNG image.
	//
	// Parameters:
	//   - w: the writer receiving the encoded image
	//
	// Returns:
	//   - error: an error if encoding fails
	EncodePNG(w io.Writer) error

	// setPixel stores a color at pixel (x, y), clamping each channel to [0, 1].
	setPixel(x, y int, c mgl32.Vec4)
}

var _ Target = &target{}

// NewTarget creates a new render target of the given size with all pixels
// initialized to transparent black.
//
// Parameters:
//   - width: target width in pixels (must be > 0)
//   - height: target height in pixels (must be > 0)
//
// Returns:
//   - Target: a new render target
func NewTarget(width, height int) Target {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid target size %dx%d", width, height))
	}
	return &target{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

func (t *target) Width() int {
	return t.width
}

func (t *target) Height() int {
	return t.height
}

func (t *target) Clear(c mgl32.Vec4) {
	r, g, b, a := colorToBytes(c)
	for y := 0; y < t.height; y++ {
		row := t.img.Pix[y*t.img.Stride : y*t.img.Stride+t.width*4]
		for x := 0; x < t.width; x++ {
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = a
		}
	}
}

func (t *target) At(x, y int) mgl32.Vec4 {
	i := y*t.img.Stride + x*4
	return mgl32.Vec4{
		float32(t.img.Pix[i+0]) / 255,
		float32(t.img.Pix[i+1]) / 255,
		float32(t.img.Pix[i+2]) / 255,
		float32(t.img.Pix[i+3]) / 255,
	}
}

func (t *target) Image() *image.RGBA {
	return t.img
}

func (t *target) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, t.img); err != nil {
		return fmt.Errorf("failed to encode render target: %w", err)
	}
	return nil
}

func (t *target) setPixel(x, y int, c mgl32.Vec4) {
	i := y*t.img.Stride + x*4
	r, g, b, a := colorToBytes(c)
	t.img.Pix[i+0] = r
	t.img.Pix[i+1] = g
	t.img.Pix[i+2] = b
	t.img.Pix[i+3] = a
}

// colorToBytes converts a [0, 1] float color to 8-bit channels with rounding.
func colorToBytes(c mgl32.Vec4) (r, g, b, a uint8) {
	return channelToByte(c.X()), channelToByte(c.Y()), channelToByte(c.Z()), channelToByte(c.W())
}

func channelToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
