package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		for _, n := range []int{0, 1, 2, 7, 64, 1001} {
			pool := New(workers)
			hits := make([]atomic.Int32, n)
			pool.ParallelFor(n, func(start, end int) {
				for i := start; i < end; i++ {
					hits[i].Add(1)
				}
			})
			pool.Close()

			for i := range hits {
				require.Equalf(t, int32(1), hits[i].Load(), "workers=%d n=%d index=%d", workers, n, i)
			}
		}
	}
}

func TestNilPoolRunsSequentially(t *testing.T) {
	var p *Pool
	calls := 0
	p.ParallelFor(10, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, p.NumWorkers())
	p.Close()
}

func TestClosedPoolFallsBack(t *testing.T) {
	p := New(4)
	p.Close()
	p.Close()

	var sum atomic.Int64
	p.ParallelFor(100, func(start, end int) {
		for i := start; i < end; i++ {
			sum.Add(int64(i))
		}
	})
	assert.Equal(t, int64(4950), sum.Load())
}

func TestDefaultWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.Positive(t, p.NumWorkers())
}
