package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anas-shakeel/go-rawedit/internal/adjustments"
	"github.com/anas-shakeel/go-rawedit/internal/histogram"
	"github.com/anas-shakeel/go-rawedit/internal/observability"
)

// Result of one completed scheduled run
type Result struct {
	Settings  adjustments.Settings
	Histogram *histogram.Histogram
	Err       error
	Elapsed   time.Duration
}

// Scheduler feeds settings changes to an Editor from a single goroutine.
// Rapid submissions are coalesced (only the latest is processed), a quiet
// period of debounce must pass before a run starts, and a submission that
// arrives mid-run cancels that run so stale work never reaches the Editor.
type Scheduler struct {
	ed       *Editor
	debounce time.Duration
	log      observability.Logger

	mu      sync.Mutex
	pending *adjustments.Settings
	cancel  context.CancelFunc // cancels the in-flight run

	wake    chan struct{}
	results chan Result
	stop    context.CancelFunc
	done    chan struct{}
}

func NewScheduler(ed *Editor, debounce time.Duration, logger observability.Logger) *Scheduler {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Scheduler{
		ed:       ed,
		debounce: debounce,
		log:      logger,
		wake:     make(chan struct{}, 1),
		results:  make(chan Result, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the worker. It stops when ctx is done or Close is called.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.stop = context.WithCancel(ctx)
	go s.loop(ctx)
}

// Close stops the worker and waits for it to exit
func (s *Scheduler) Close() {
	if s.stop != nil {
		s.stop()
		<-s.done
	}
}

// Results delivers completed runs. Superseded or cancelled runs are dropped.
// If the consumer falls behind, an unread result is replaced by the newer one.
// The channel is closed once the worker started by Start exits.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Submit queues settings for processing without blocking
func (s *Scheduler) Submit(settings adjustments.Settings) {
	s.mu.Lock()
	if s.pending != nil {
		s.log.Debug("coalesced pending settings")
	}
	s.pending = &settings
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.log.Debug("cancelled in-flight run")
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) take() (adjustments.Settings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return adjustments.Settings{}, false
	}
	settings := *s.pending
	s.pending = nil
	return settings, true
}

func (s *Scheduler) loop(ctx context.Context) {
	defer func() {
		close(s.results)
		close(s.done)
	}()

	timer := time.NewTimer(s.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
			// restart the quiet period on every submission
			timer.Reset(s.debounce)
		case <-timer.C:
			settings, ok := s.take()
			if !ok {
				continue
			}
			s.run(ctx, settings)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, settings adjustments.Settings) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.pending != nil {
		// something newer arrived between take and here
		s.mu.Unlock()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	start := time.Now()
	hist, err := s.ed.Apply(runCtx, settings)

	s.mu.Lock()
	s.cancel = nil
	s.mu.Unlock()

	if errors.Is(err, context.Canceled) || errors.Is(err, ErrSuperseded) {
		return
	}
	s.publish(Result{Settings: settings, Histogram: hist, Err: err, Elapsed: time.Since(start)})
}

func (s *Scheduler) publish(r Result) {
	for {
		select {
		case s.results <- r:
			return
		default:
		}
		// drop the stale unread result
		select {
		case <-s.results:
		default:
		}
	}
}
