// Filters perform the per-pixel tone/colour stages and the neighbourhood
// (clarity, sharpening) stages of the adjustment chain.
package filters

import (
	"context"
	"slices"

	"github.com/anas-shakeel/go-rawedit/internal/adjustments"
	"github.com/anas-shakeel/go-rawedit/internal/raster"
	"github.com/anas-shakeel/go-rawedit/internal/workerpool"
)

// Stage is one step of the adjustment chain. Apply rewrites b in place.
type Stage struct {
	Name  string
	Apply func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings)
}

// The order matters: the stages do not commute.
var chain = []Stage{
	{"exposure", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		Exposure(p, b, s.Exposure)
	}},
	{"highlights-shadows", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		HighlightsShadows(p, b, s.Highlights, s.Shadows)
	}},
	{"whites-blacks", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		WhitesBlacks(p, b, s.Whites, s.Blacks)
	}},
	{"contrast", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		Contrast(p, b, s.Contrast)
	}},
	{"temperature-tint", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		TemperatureTint(p, b, s.Temperature, s.Tint)
	}},
	{"vibrance-saturation", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		VibranceSaturation(p, b, s.Vibrance, s.Saturation)
	}},
	{"clarity", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		Clarity(p, b, s.Clarity)
	}},
	{"sharpening", func(p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) {
		Sharpen(p, b, s.Sharpening)
	}},
}

// Returns the stages in the order Apply runs them
func Chain() []Stage {
	return slices.Clone(chain)
}

// Runs the full chain over b with s clamped to its declared ranges.
// ctx is checked between stages; a cancelled run returns ctx.Err() and b
// must then be discarded.
func Apply(ctx context.Context, p *workerpool.Pool, b *raster.Buffer, s adjustments.Settings) error {
	s = s.Clamped()
	for _, stage := range chain {
		if err := ctx.Err(); err != nil {
			return err
		}
		stage.Apply(p, b, s)
	}
	return nil
}

// Calls fn with the RGB bytes of every pixel, spreading rows over the pool
func eachPixel(p *workerpool.Pool, b *raster.Buffer, fn func(px []uint8)) {
	p.ParallelFor(b.Height, func(y0, y1 int) {
		end := b.Offset(0, y1)
		for i := b.Offset(0, y0); i < end; i += raster.BytesPerPixel {
			fn(b.Pix[i : i+3 : i+3])
		}
	})
}
