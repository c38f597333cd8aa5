package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-12.5, 0},
		{0, 0},
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{127.49, 127},
		{254.6, 255},
		{256, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ClampByte(tt.in), "ClampByte(%v)", tt.in)
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average())
	assert.Equal(t, 2.5, Average(1, 2, 3, 4))
	assert.Equal(t, 101.25, Average(100, 100, 100, 105))
}

func TestLuma(t *testing.T) {
	assert.InDelta(t, 255.0, Luma(255, 255, 255), 1e-9)
	assert.InDelta(t, 76.245, Luma(255, 0, 0), 1e-9)
	assert.InDelta(t, 100.0, Luma(100, 100, 100), 1e-9)
}

func TestColoredBlock(t *testing.T) {
	assert.Equal(t, "\033[48;2;1;2;3m  \033[0m", ColoredBlock("  ", 1, 2, 3))
}
