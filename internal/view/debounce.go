package view

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period for the category-filter input.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces a rapidly changing value into a single delayed
// propagation: each Set restarts the quiet period, and only the value of
// the last Set in a burst reaches the callback.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	fn      func(string)
	timer   *time.Timer
	pending string
	has     bool
	gen     uint64
}

// NewDebouncer creates a debouncer that propagates through fn after quiet
// has elapsed since the last Set.
func NewDebouncer(quiet time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{quiet: quiet, fn: fn}
}

// Set records a new value and restarts the quiet period, cancelling any
// previously scheduled propagation.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = value
	d.has = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.has {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.has = false
	d.timer = nil
	d.mu.Unlock()
	d.fn(value)
}

// Flush propagates any pending value immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if !d.has {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.has = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fn(value)
}

// Stop drops any pending value without propagating it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.has = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
