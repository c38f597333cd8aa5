package histogram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/anas-shakeel/go-rawedit/internal/raster"
)

func fill(width, height int, r, g, b uint8) *raster.Buffer {
	buf := raster.NewBuffer(width, height)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, 255
	}
	return buf
}

func TestUniformGray(t *testing.T) {
	h := Compute(fill(4, 4, 100, 100, 100))

	var want [Bins]int
	want[100] = 16
	if diff := cmp.Diff(want, h.Luminance); diff != "" {
		t.Errorf("luminance (-want +got):\n%s", diff)
	}
	assert.Equal(t, h.Red, h.Green)
	assert.Equal(t, h.Red, h.Blue)
	assert.Equal(t, want, h.Red)
}

func TestTotalsEqualPixelCount(t *testing.T) {
	buf := raster.NewBuffer(13, 7)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 31)
	}
	h := Compute(buf)
	for _, c := range Channels {
		assert.Equalf(t, 13*7, h.Total(c), "%s", c)
	}
}

func TestLuminanceRounding(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    int
	}{
		{255, 255, 255, 255},
		{0, 0, 0, 0},
		{255, 0, 0, 76},   // 76.245
		{0, 255, 0, 150},  // 149.685
		{0, 0, 255, 29},   // 29.07
		{1, 1, 0, 1},      // 0.886
		{200, 50, 50, 95}, // 94.85
	}
	for _, tt := range tests {
		h := Compute(fill(1, 1, tt.r, tt.g, tt.b))
		assert.Equalf(t, 1, h.Luminance[tt.want], "rgb(%d,%d,%d)", tt.r, tt.g, tt.b)
	}
}

func TestComputeDoesNotMutate(t *testing.T) {
	buf := fill(3, 3, 10, 20, 30)
	before := buf.Clone()
	Compute(buf)
	assert.Equal(t, before.Pix, buf.Pix)
}

func TestPeakAndScaled(t *testing.T) {
	buf := fill(4, 1, 0, 0, 0)
	buf.Pix[0] = 255 // one red pixel at 255
	h := Compute(buf)

	// blue and green have four pixels at 0
	assert.Equal(t, 4, h.Peak())

	red := h.Scaled(Red, 100)
	assert.Equal(t, 75.0, red[0])
	assert.Equal(t, 25.0, red[255])
	assert.Equal(t, 100.0, h.Scaled(Blue, 100)[0])

	empty := &Histogram{}
	assert.Equal(t, 0, empty.Peak())
	assert.Equal(t, make([]float64, Bins), empty.Scaled(Luminance, 100))
}

func TestMean(t *testing.T) {
	buf := fill(2, 1, 100, 0, 0)
	buf.Pix[4] = 200
	h := Compute(buf)
	assert.Equal(t, 150.0, h.Mean(Red))
	assert.Equal(t, 0.0, h.Mean(Green))
	assert.Equal(t, 0.0, (&Histogram{}).Mean(Red))
}

func TestCountsIsCopy(t *testing.T) {
	h := Compute(fill(1, 1, 5, 5, 5))
	c := h.Counts(Red)
	c[5] = 99
	assert.Equal(t, 1, h.Red[5])
}
