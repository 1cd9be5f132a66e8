// Raw 8-bit RGBA raster buffer shared by all pipeline stages
package raster

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidDimension reports a structurally broken buffer: a zero width or
// height, or a pixel slice whose length does not match the dimensions.
var ErrInvalidDimension = errors.New("invalid dimension")

// Buffer is a width×height raster of interleaved R,G,B,A bytes, row-major,
// top-left origin. len(Pix) must equal Width*Height*4.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed buffer of the given dimensions.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds maximum %d", ErrInvalidDimension, width, height, maxDimension)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// Check for reasonable size limits (prevent memory issues)
const maxDimension = 16384

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidDimension)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: pixel data is %d bytes, want %d for %dx%d",
			ErrInvalidDimension, len(b.Pix), b.Width*b.Height*4, b.Width, b.Height)
	}
	return nil
}

// Clone returns an independent deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of pixel (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBA wraps the buffer as an *image.RGBA sharing the same pixel storage.
// Writes through the returned image are visible in the buffer.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage copies an arbitrary decoded image into a fresh buffer.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	dst := buf.RGBA()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return buf, nil
}
