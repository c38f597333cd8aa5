// raster package holds the original and working RGBA8 buffers of an edit session
package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// BytesPerPixel of every buffer: R, G, B, A
const BytesPerPixel = 4

var ErrInvalidDimensions = errors.New("invalid dimensions: buffer length must equal width*height*4")

// Buffer is a row-major RGBA8 pixel buffer (stride = Width*4)
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// Creates a zeroed buffer
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]uint8, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}
}

// Returns the index of the R byte of pixel (x, y)
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// Number of pixels in the buffer
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

// Returns an independent copy of the buffer
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// Returns the buffer as an *image.NRGBA sharing its pixels.
// Channels are stored straight (not premultiplied by alpha).
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

func validate(pix []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height*BytesPerPixel {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrInvalidDimensions, len(pix), width, height)
	}
	return nil
}

// Image owns an immutable original buffer and the working buffer produced by
// the latest committed run. Both always share the same dimensions.
type Image struct {
	original *Buffer
	working  *Buffer
}

// Creates an image from a copy of pix
func New(pix []uint8, width, height int) (*Image, error) {
	img := &Image{}
	if err := img.Load(pix, width, height); err != nil {
		return nil, err
	}
	return img, nil
}

// Converts any decoded image into an RGBA8 raster
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return New(dst.Pix, bounds.Dx(), bounds.Dy())
}

// Replaces the original with a copy of pix and resets working to match it.
// On error the image is left unchanged.
func (img *Image) Load(pix []uint8, width, height int) error {
	if err := validate(pix, width, height); err != nil {
		return err
	}

	original := NewBuffer(width, height)
	copy(original.Pix, pix)

	img.original = original
	img.working = original.Clone()
	return nil
}

func (img *Image) Width() int {
	return img.original.Width
}

func (img *Image) Height() int {
	return img.original.Height
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

// Returns a fresh copy of the original, the starting point of every run
func (img *Image) Fresh() *Buffer {
	return img.original.Clone()
}

// Returns a copy of the original buffer
func (img *Image) Original() *Buffer {
	return img.original.Clone()
}

// Installs b as the working buffer. b must have been produced from Fresh.
func (img *Image) Commit(b *Buffer) {
	if b.Width != img.original.Width || b.Height != img.original.Height || len(b.Pix) != len(img.original.Pix) {
		panic(fmt.Sprintf("raster: committed buffer %dx%d (%d bytes) does not match original %dx%d",
			b.Width, b.Height, len(b.Pix), img.original.Width, img.original.Height))
	}
	img.working = b
}

// Returns a read-only view of the working buffer (an independent copy)
func (img *Image) Snapshot() *image.NRGBA {
	return img.working.Clone().NRGBA()
}

// Returns the working buffer itself; callers must not modify it
func (img *Image) Working() *Buffer {
	return img.working
}
