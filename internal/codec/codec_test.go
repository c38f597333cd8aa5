package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) % 256), 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"jpg":   JPEG,
		"JPEG":  JPEG,
		".png":  PNG,
		"gif":   GIF,
		" bmp ": BMP,
		"tif":   TIFF,
		".TIFF": TIFF,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoErrorf(t, err, "ParseFormat(%q)", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("heic")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/out/edited-image.jpg")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)

	_, err = FormatFromPath("noext")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLosslessFormatsKeepPixels(t *testing.T) {
	src := gradient(9, 5)
	for _, f := range []Format{PNG, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, f, 0))

			img, name, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, string(f), name)
			for y := range 5 {
				for x := range 9 {
					r0, g0, b0, _ := src.At(x, y).RGBA()
					r1, g1, b1, _ := img.At(x, y).RGBA()
					require.Equalf(t, [3]uint32{r0, g0, b0}, [3]uint32{r1, g1, b1}, "pixel %d,%d", x, y)
				}
			}
		})
	}
}

func TestJPEGQuality(t *testing.T) {
	src := gradient(64, 64)

	var low, high bytes.Buffer
	require.NoError(t, Encode(&low, src, JPEG, 5))
	require.NoError(t, Encode(&high, src, JPEG, 100))
	assert.Less(t, low.Len(), high.Len())

	// out of range is clamped rather than rejected
	var clamped bytes.Buffer
	require.NoError(t, Encode(&clamped, src, JPEG, 1000))
	assert.Equal(t, high.Len(), clamped.Len())
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, gradient(1, 1), Format("heic"), 0)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WriteFile(path, gradient(4, 3), PNG, 0))

	img, name, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", name)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.heic")
	err := WriteFile(path, gradient(4, 3), Format("heic"), 0)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.NoFileExists(t, path)

	failing := errors.New("encoder failed")
	err = Save(path, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return failing
	})
	assert.ErrorIs(t, err, failing)
	assert.NoFileExists(t, path)
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	require.NoError(t, WriteFile(path, gradient(7, 2), BMP, 0))

	cfg, name, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", name)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 2, cfg.Height)

	_, _, err = ReadConfig(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
