// Small numeric and terminal helpers shared by the filters, histogram and CLI.
package utils

import (
	"fmt"
	"math"
)

// Returns the average of all given numbers n (0 for no numbers)
func Average(n ...float64) float64 {
	if len(n) == 0 {
		return 0
	}

	// Sum all numbers
	var sum float64
	for _, num := range n {
		sum += num
	}

	// Divide sum by total numbers
	return sum / float64(len(n))
}

// Clamps v to [0, 255] and rounds half to even, the way an 8-bit clamped
// store does. NaN becomes 0.
func ClampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// Clamps v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Returns the ITU-R BT.601 luma of an RGB triple
func Luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// Print a Colored Block in terminal
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}
