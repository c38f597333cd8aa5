package filters

import (
	"github.com/anas-shakeel/go-rawedit/internal/raster"
	"github.com/anas-shakeel/go-rawedit/internal/utils"
	"github.com/anas-shakeel/go-rawedit/internal/workerpool"
)

var sharpenKernel = [3][3]float64{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// Calls fn(i, src) for every interior pixel of b, where i is the pixel's
// offset and src is a frozen copy of b taken before the first write.
// The one-pixel border is never visited.
func eachInterior(p *workerpool.Pool, b *raster.Buffer, fn func(i int, src []uint8)) {
	if b.Width < 3 || b.Height < 3 {
		return
	}
	src := b.Clone().Pix

	p.ParallelFor(b.Height-2, func(r0, r1 int) {
		for y := r0 + 1; y < r1+1; y++ {
			for x := 1; x < b.Width-1; x++ {
				fn(b.Offset(x, y), src)
			}
		}
	})
}

// Local contrast: pushes each channel away from the mean of its four
// direct neighbours.
func Clarity(p *workerpool.Pool, b *raster.Buffer, clarity float64) {
	if clarity == 0 {
		return
	}
	factor := clarity / 100
	stride := b.Width * raster.BytesPerPixel

	eachInterior(p, b, func(i int, src []uint8) {
		for c := range 3 {
			center := float64(src[i+c])
			surrounding := utils.Average(
				float64(src[i-stride+c]),
				float64(src[i+stride+c]),
				float64(src[i-raster.BytesPerPixel+c]),
				float64(src[i+raster.BytesPerPixel+c]),
			)
			b.Pix[i+c] = utils.ClampByte(center + (center-surrounding)*factor)
		}
	})
}

// Blends each channel towards its 3x3 sharpen-kernel response.
// sharpening in [0, 100] is the blend percentage.
func Sharpen(p *workerpool.Pool, b *raster.Buffer, sharpening float64) {
	if sharpening == 0 {
		return
	}
	factor := sharpening / 100
	stride := b.Width * raster.BytesPerPixel

	eachInterior(p, b, func(i int, src []uint8) {
		for c := range 3 {
			var sum float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					k := sharpenKernel[ky+1][kx+1]
					if k == 0 {
						continue
					}
					sum += float64(src[i+ky*stride+kx*raster.BytesPerPixel+c]) * k
				}
			}

			original := float64(src[i+c])
			sharpened := utils.Clamp(sum, 0, 255)
			b.Pix[i+c] = utils.ClampByte(original + (sharpened-original)*factor)
		}
	})
}
