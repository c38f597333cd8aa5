package filters

import (
	"math"

	"github.com/anas-shakeel/go-rawedit/internal/raster"
	"github.com/anas-shakeel/go-rawedit/internal/utils"
	"github.com/anas-shakeel/go-rawedit/internal/workerpool"
)

// Adjusts the Exposure of a buffer in-place.
// ev is in stops: every channel is multiplied by 2^ev.
func Exposure(p *workerpool.Pool, b *raster.Buffer, ev float64) {
	if ev == 0 {
		return
	}
	factor := math.Pow(2, ev)

	eachPixel(p, b, func(px []uint8) {
		for c := range px {
			px[c] = utils.ClampByte(float64(px[c]) * factor)
		}
	})
}

// Pulls down (or lifts) bright tones and lifts (or crushes) dark tones.
// The weight grows linearly with the distance of the pixel's luma from mid
// grey; a pixel exactly at mid grey is left alone.
func HighlightsShadows(p *workerpool.Pool, b *raster.Buffer, highlights, shadows float64) {
	if highlights == 0 && shadows == 0 {
		return
	}
	highlightFactor := 1 - highlights/100
	shadowFactor := 1 + shadows/100

	eachPixel(p, b, func(px []uint8) {
		r, g, bl := float64(px[0]), float64(px[1]), float64(px[2])
		n := utils.Luma(r, g, bl) / 255

		var scale float64
		switch {
		case n > 0.5:
			w := (n - 0.5) * 2
			scale = 1 - w*(1-highlightFactor)
		case n < 0.5:
			w := (0.5 - n) * 2
			scale = 1 + w*(shadowFactor-1)
		default:
			return
		}

		px[0] = utils.ClampByte(r * scale)
		px[1] = utils.ClampByte(g * scale)
		px[2] = utils.ClampByte(bl * scale)
	})
}

// Moves every channel towards white (whites), then scales it (blacks).
// Unlike HighlightsShadows there is no luma gating.
func WhitesBlacks(p *workerpool.Pool, b *raster.Buffer, whites, blacks float64) {
	if whites == 0 && blacks == 0 {
		return
	}
	whitesFactor := whites / 100
	blacksFactor := blacks / 100

	eachPixel(p, b, func(px []uint8) {
		for c := range px {
			v := float64(utils.ClampByte(float64(px[c]) + (255-float64(px[c]))*whitesFactor))
			px[c] = utils.ClampByte(v + v*blacksFactor)
		}
	})
}

// Adjusts the Contrast of a buffer in-place around the fixed pivot 128.
// contrast in [-100, 100]; 0 leaves the buffer unchanged.
func Contrast(p *workerpool.Pool, b *raster.Buffer, contrast float64) {
	if contrast == 0 {
		return
	}
	factor := (259 * (contrast + 255)) / (255 * (259 - contrast))

	eachPixel(p, b, func(px []uint8) {
		for c := range px {
			px[c] = utils.ClampByte(factor*(float64(px[c])-128) + 128)
		}
	})
}

// Shifts white balance. Positive temperature warms (more red, less blue),
// negative cools. Positive tint adds magenta (red and blue up, green down),
// negative tint only raises green.
func TemperatureTint(p *workerpool.Pool, b *raster.Buffer, temperature, tint float64) {
	if temperature == 0 && tint == 0 {
		return
	}
	tempFactor := temperature / 100
	tintFactor := tint / 100

	eachPixel(p, b, func(px []uint8) {
		px[0] = utils.ClampByte(float64(px[0]) * (1 + tempFactor*0.3))
		px[2] = utils.ClampByte(float64(px[2]) * (1 - tempFactor*0.3))

		if tintFactor > 0 {
			px[0] = utils.ClampByte(float64(px[0]) * (1 + tintFactor*0.2))
			px[2] = utils.ClampByte(float64(px[2]) * (1 + tintFactor*0.2))
		}
		px[1] = utils.ClampByte(float64(px[1]) * (1 - tintFactor*0.2))
	})
}

// Scales each pixel's distance from its grey value. Vibrance is weighted by
// (1 - HSL saturation) so already vivid pixels move less. Neutral pixels
// are never touched.
func VibranceSaturation(p *workerpool.Pool, b *raster.Buffer, vibrance, saturation float64) {
	if vibrance == 0 && saturation == 0 {
		return
	}
	vibranceFactor := vibrance / 100
	saturationFactor := saturation / 100

	eachPixel(p, b, func(px []uint8) {
		r, g, bl := float64(px[0]), float64(px[1]), float64(px[2])
		maxC := max(r, g, bl)
		minC := min(r, g, bl)
		diff := maxC - minC
		if diff == 0 {
			return
		}

		sum := maxC + minC
		var sat float64
		if sum/2 > 127.5 {
			sat = diff / (510 - sum)
		} else {
			sat = diff / sum
		}

		total := utils.Clamp(saturationFactor+vibranceFactor*(1-sat), -1, 1)
		gray := utils.Luma(r, g, bl)

		px[0] = utils.ClampByte(gray + (r-gray)*(1+total))
		px[1] = utils.ClampByte(gray + (g-gray)*(1+total))
		px[2] = utils.ClampByte(gray + (bl-gray)*(1+total))
	})
}
