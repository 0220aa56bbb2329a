package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ai-assistant-client/internal/pkg/logger"
)

const module = "SCHEDULER"

// RunFunc is the deferred work, typically an authoritative re-fetch.
type RunFunc func(ctx context.Context) error

// Debouncer runs a function once after a burst of triggers has been quiet for delay.
// At most one run is in flight; a trigger that lands while a run is in flight causes
// exactly one more run after it, so the last run always starts after the last trigger.
type Debouncer struct {
	name   string
	delay  time.Duration
	run    RunFunc
	logger logger.ILogger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	running bool
	pending bool
	stopped bool
	wg      sync.WaitGroup

	runs atomic.Uint64
}

func NewDebouncer(parent context.Context, name string, delay time.Duration, run RunFunc, log logger.ILogger) *Debouncer {
	ctx, cancel := context.WithCancel(parent)
	return &Debouncer{
		name:   name,
		delay:  delay,
		run:    run,
		logger: log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Trigger (re)arms the timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.running {
		d.pending = true
		d.mu.Unlock()
		return
	}
	d.running = true
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	for {
		d.runs.Add(1)
		if err := d.run(d.ctx); err != nil {
			d.logger.Warn(module, "Scheduled refresh failed", map[string]interface{}{
				"name":  d.name,
				"error": err.Error(),
			})
		}

		d.mu.Lock()
		if d.pending && !d.stopped {
			d.pending = false
			d.mu.Unlock()
			continue
		}
		d.running = false
		d.pending = false
		d.mu.Unlock()
		return
	}
}

// Runs reports how many times the function has started.
func (d *Debouncer) Runs() uint64 {
	return d.runs.Load()
}

// Stop cancels any armed timer and the in-flight run's context, then waits for it to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
