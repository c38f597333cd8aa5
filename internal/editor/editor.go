// Package editor ties a raster, its adjustment settings and the latest
// histogram into one edit session.
//
// Every Process call rebuilds the working buffer from the original and
// replays the full adjustment chain, so repeated runs with the same settings
// produce the same pixels. Readers only ever see the result of the last
// completed run.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/anas-shakeel/go-rawedit/internal/adjustments"
	"github.com/anas-shakeel/go-rawedit/internal/codec"
	"github.com/anas-shakeel/go-rawedit/internal/filters"
	"github.com/anas-shakeel/go-rawedit/internal/histogram"
	"github.com/anas-shakeel/go-rawedit/internal/observability"
	"github.com/anas-shakeel/go-rawedit/internal/raster"
	"github.com/anas-shakeel/go-rawedit/internal/workerpool"
)

var (
	ErrNotLoaded  = errors.New("no image loaded")
	ErrNoData     = errors.New("no histogram: image has not been processed")
	ErrSuperseded = errors.New("run superseded by a newer image")
)

// State of the session buffer
type State int

const (
	Empty State = iota
	Loaded
	Processing
	Ready
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Processing:
		return "processing"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Option func(*Editor)

func WithLogger(l observability.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithWorkers sets the size of the row worker pool (<= 0 means GOMAXPROCS,
// 1 means run on the calling goroutine).
func WithWorkers(n int) Option {
	return func(e *Editor) { e.workers = n }
}

// Editor is an edit session. Its methods are safe for concurrent use, but
// settings should have a single writer (see Scheduler).
type Editor struct {
	mu         sync.RWMutex
	img        *raster.Image
	generation uint64 // bumped on every load
	settings   adjustments.Settings
	hist       *histogram.Histogram
	state      State

	runMu   sync.Mutex
	pool    *workerpool.Pool
	workers int
	log     observability.Logger
}

func New(opts ...Option) *Editor {
	e := &Editor{log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers != 1 {
		e.pool = workerpool.New(e.workers)
	}
	return e
}

// Close releases the worker pool. It waits for an in-flight Process.
func (e *Editor) Close() {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	e.pool.Close()
}

// Load replaces the session image with a copy of pix and resets the
// settings. On error the previous session is kept.
func (e *Editor) Load(pix []uint8, width, height int) error {
	img, err := raster.New(pix, width, height)
	if err != nil {
		return err
	}
	e.install(img)
	return nil
}

// LoadImage converts a decoded image to straight-alpha RGBA8 and loads it
func (e *Editor) LoadImage(src image.Image) error {
	img, err := raster.FromImage(src)
	if err != nil {
		return err
	}
	e.install(img)
	return nil
}

func (e *Editor) install(img *raster.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Empty
	e.img = img
	e.generation++
	e.settings.Reset()
	e.hist = nil
	e.state = Loaded

	e.log.Debug("image loaded", observability.Int("width", img.Width()), observability.Int("height", img.Height()))
}

func (e *Editor) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Editor) Settings() adjustments.Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Set changes one adjustment; the next Process picks it up
func (e *Editor) Set(p adjustments.Param, v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Set(p, v)
}

// Update replaces every adjustment
func (e *Editor) Update(s adjustments.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
}

// Reset restores the default adjustments
func (e *Editor) Reset() {
	e.Update(adjustments.Default())
}

// Apply replaces the settings and processes the image
func (e *Editor) Apply(ctx context.Context, s adjustments.Settings) (*histogram.Histogram, error) {
	e.Update(s)
	return e.Process(ctx)
}

// Process rebuilds the working buffer from the original with the current
// settings and recomputes the histogram. Nothing is published unless the
// run completes: on cancellation or a concurrent Load the previous result
// stays visible.
func (e *Editor) Process(ctx context.Context) (*histogram.Histogram, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	e.mu.Lock()
	if e.img == nil {
		e.mu.Unlock()
		return nil, ErrNotLoaded
	}
	img, gen, settings, prev := e.img, e.generation, e.settings, e.state
	buf := img.Fresh()
	e.state = Processing
	e.mu.Unlock()

	start := time.Now()
	err := filters.Apply(ctx, e.pool, buf, settings)
	var hist *histogram.Histogram
	if err == nil {
		hist = histogram.Compute(buf)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		// a new image was installed while we ran; it owns the state now
		e.log.Debug("run discarded", observability.String("reason", "superseded"))
		return nil, ErrSuperseded
	}
	if err != nil {
		e.state = prev
		e.log.Debug("run cancelled", observability.Error("err", err))
		return nil, err
	}

	img.Commit(buf)
	e.hist = hist
	e.state = Ready
	e.log.Debug("run complete",
		observability.Duration("elapsed", time.Since(start)),
		observability.Int("pixels", buf.Len()))
	return hist, nil
}

// Histogram returns the statistics of the last completed run
func (e *Editor) Histogram() (*histogram.Histogram, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.hist == nil {
		return nil, ErrNoData
	}
	return e.hist, nil
}

// Snapshot returns a copy of the working buffer for rendering
func (e *Editor) Snapshot() (*image.NRGBA, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.img == nil {
		return nil, ErrNotLoaded
	}
	return e.img.Snapshot(), nil
}

// Original returns a copy of the unedited image
func (e *Editor) Original() (*image.NRGBA, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.img == nil {
		return nil, ErrNotLoaded
	}
	return e.img.Original().NRGBA(), nil
}

// Export encodes the working buffer
func (e *Editor) Export(w io.Writer, f codec.Format, quality int) error {
	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	return codec.Encode(w, snap, f, quality)
}
