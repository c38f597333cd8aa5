// codec package decodes source images and encodes edited results.
// Pixel work never happens here; it only moves images in and out of files.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an output encoding
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// DefaultQuality is the JPEG quality used when the caller does not pick one
const DefaultQuality = 95

var ErrUnknownFormat = errors.New("unknown image format")

// Parses a format name or file extension ("jpg", ".PNG", "tif", ...)
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Picks the output format from a file name's extension
func FormatFromPath(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// Decodes any registered format (jpeg, png, gif, bmp, tiff, webp).
// Returns the image and the detected format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return img, name, nil
}

// Reads and decodes an image file
func ReadFile(filename string) (image.Image, string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	return Decode(bufio.NewReader(file))
}

// Reads only the header of an image file: dimensions, colour model and
// the detected format name
func ReadConfig(filename string) (image.Config, string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return image.Config{}, "", err
	}
	defer file.Close()

	cfg, name, err := image.DecodeConfig(bufio.NewReader(file))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("decode config: %w", err)
	}
	return cfg, name, nil
}

// Encodes img as f. quality (1..100) only affects JPEG; out-of-range values
// are clamped and 0 means DefaultQuality.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case JPEG:
		if quality == 0 {
			quality = DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: min(max(quality, 1), 100)})
	case PNG:
		return png.Encode(w, img)
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Saves the image onto local disk
func WriteFile(filename string, img image.Image, f Format, quality int) error {
	return Save(filename, func(w io.Writer) error {
		return Encode(w, img, f, quality)
	})
}

// Save creates filename and hands encode a buffered writer for it. If encode,
// the flush or the close fails, the partial file is removed.
func Save(filename string, encode func(w io.Writer) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(filename)
		}
	}()

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(file)
	if err := encode(w); err != nil {
		return err
	}
	return w.Flush()
}
