// Package histogram computes per-channel brightness distributions of an
// RGBA8 buffer for display.
package histogram

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/anas-shakeel/go-rawedit/internal/raster"
	"github.com/anas-shakeel/go-rawedit/internal/utils"
)

// Bins is the number of buckets per channel, one per 8-bit value.
const Bins = 256

// Channel selects one of the four distributions.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Luminance
)

// Channels lists every channel in display order.
var Channels = []Channel{Luminance, Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Luminance:
		return "luminance"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Histogram holds the four count arrays. Index i of each array is the number
// of pixels whose channel (or rounded luma) equals i.
type Histogram struct {
	Red       [Bins]int
	Green     [Bins]int
	Blue      [Bins]int
	Luminance [Bins]int
}

// Compute counts every pixel of b in a single pass. b is not modified.
func Compute(b *raster.Buffer) *Histogram {
	h := &Histogram{}
	for i := 0; i+3 < len(b.Pix); i += raster.BytesPerPixel {
		r, g, bl := b.Pix[i], b.Pix[i+1], b.Pix[i+2]
		h.Red[r]++
		h.Green[g]++
		h.Blue[bl]++
		h.Luminance[lumaBin(r, g, bl)]++
	}
	return h
}

// Rounds half up, guarded against float drift past 255.
func lumaBin(r, g, b uint8) int {
	l := math.Floor(utils.Luma(float64(r), float64(g), float64(b)) + 0.5)
	return int(utils.Clamp(l, 0, Bins-1))
}

// Counts returns a copy of the requested distribution.
func (h *Histogram) Counts(c Channel) []int {
	var src *[Bins]int
	switch c {
	case Red:
		src = &h.Red
	case Green:
		src = &h.Green
	case Blue:
		src = &h.Blue
	case Luminance:
		src = &h.Luminance
	default:
		panic(fmt.Sprintf("histogram: invalid channel %d", int(c)))
	}
	out := make([]int, Bins)
	copy(out, src[:])
	return out
}

// Total is the number of pixels counted in channel c. It equals width*height
// for every channel.
func (h *Histogram) Total(c Channel) int {
	return lo.Sum(h.Counts(c))
}

// Peak is the largest single count across all four channels. Charts scale
// every channel by this value so they share one vertical axis.
func (h *Histogram) Peak() int {
	return lo.Max(lo.Map(Channels, func(c Channel, _ int) int {
		return lo.Max(h.Counts(c))
	}))
}

// Scaled returns bar heights in [0, height] for channel c, normalised by Peak.
func (h *Histogram) Scaled(c Channel, height float64) []float64 {
	out := make([]float64, Bins)
	peak := h.Peak()
	if peak == 0 {
		return out
	}
	for i, n := range h.Counts(c) {
		out[i] = float64(n) / float64(peak) * height
	}
	return out
}

// Mean is the count-weighted average bin of channel c, 0 for an empty histogram.
func (h *Histogram) Mean(c Channel) float64 {
	counts := h.Counts(c)
	total := lo.Sum(counts)
	if total == 0 {
		return 0
	}
	var weighted int
	for i, n := range counts {
		weighted += i * n
	}
	return float64(weighted) / float64(total)
}
