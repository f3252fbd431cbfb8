// Package autosave is the client-side write coalescer for day forms: a
// trailing debounce with content fingerprinting, at most one in-flight
// write, and a re-arm when changes land while a write is running. It
// ships with the module so API consumers do not each reinvent the
// debounce semantics.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/clock"
)

// Status is the autosave lifecycle state surfaced to the UI.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	// StatusError means the last background write failed. Autosave does
	// not retry on its own; the next edit schedules a fresh attempt.
	StatusError Status = "error"
)

// DefaultDelay is the trailing debounce window.
const DefaultDelay = 700 * time.Millisecond

// SaveFunc performs the actual write. The draft's devices are already
// normalized.
type SaveFunc func(ctx context.Context, draft Draft) error

// Option configures a Coalescer.
type Option func(*Coalescer)

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) Option {
	return func(c *Coalescer) { c.delay = d }
}

// WithClock injects the clock used for the retroactive-day gate.
func WithClock(clk clock.Clock) Option {
	return func(c *Coalescer) { c.clk = clk }
}

// WithOnStatus registers a status listener. It is called outside the
// coalescer lock, in no guaranteed order relative to Schedule calls.
func WithOnStatus(fn func(Status)) Option {
	return func(c *Coalescer) { c.onStatus = fn }
}

// Coalescer debounces day-form changes into writes. One timer at a
// time: each Schedule replaces the previous one, so only the trailing
// edit fires. A fingerprint of the last successful write suppresses
// writes that would not change anything.
type Coalescer struct {
	delay    time.Duration
	clk      clock.Clock
	save     SaveFunc
	onStatus func(Status)

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	timer    *time.Timer
	pending  *Draft
	lastFP   string
	status   Status
	inFlight bool
	dirty    bool
	closed   bool
}

func New(save SaveFunc, opts ...Option) *Coalescer {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coalescer{
		delay:  DefaultDelay,
		clk:    clock.System(),
		save:   save,
		status: StatusIdle,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the current autosave state.
func (c *Coalescer) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// editable reports whether autosave may write this draft: the day is
// today, or the caller holds an explicit override. Checked when the
// change is scheduled and again when the timer fires, so an edit
// scheduled before midnight cannot slip through after the rollover.
func (c *Coalescer) editable(d *Draft) bool {
	return d.Override || clock.SameCalendarDay(d.DayDate, c.clk.Now())
}

// Schedule records a draft and (re)starts the debounce timer. Drafts
// whose fingerprint matches the last successful write are dropped.
// Retroactive drafts without override are never scheduled.
func (c *Coalescer) Schedule(draft Draft) {
	c.mu.Lock()

	if c.closed || !c.editable(&draft) {
		c.mu.Unlock()
		return
	}
	if Fingerprint(draft) == c.lastFP {
		c.mu.Unlock()
		return
	}

	c.pending = &draft
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
	c.mu.Unlock()
}

// Flush fires any pending draft immediately, skipping the remainder of
// the debounce window.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.fire()
}

func (c *Coalescer) fire() {
	c.mu.Lock()

	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	if c.inFlight {
		// Settle first; the pending draft re-arms afterwards.
		c.dirty = true
		c.mu.Unlock()
		return
	}

	draft := *c.pending
	c.pending = nil

	// The gate again, against the clock of right now.
	if !c.editable(&draft) {
		c.mu.Unlock()
		return
	}
	fp := Fingerprint(draft)
	if fp == c.lastFP {
		c.mu.Unlock()
		return
	}

	c.inFlight = true
	c.setStatusLocked(StatusSaving)
	c.mu.Unlock()

	go c.run(draft, fp)
}

func (c *Coalescer) run(draft Draft, fp string) {
	draft.Fields.Devices = draft.devices()
	draft.DevicesRaw = ""
	err := c.save(c.ctx, draft)

	c.mu.Lock()
	c.inFlight = false
	if c.closed {
		c.mu.Unlock()
		return
	}
	if err != nil {
		// No auto-retry: the draft that failed stays unsaved until the
		// next edit reschedules it.
		c.setStatusLocked(StatusError)
	} else {
		c.lastFP = fp
		c.setStatusLocked(StatusSaved)
	}
	rearm := c.dirty && c.pending != nil
	c.dirty = false
	if rearm {
		if c.timer != nil {
			c.timer.Stop()
		}
		c.timer = time.AfterFunc(c.delay, c.fire)
	}
	c.mu.Unlock()
}

// Close cancels the pending timer and the in-flight write. No write
// fires after Close returns.
func (c *Coalescer) Close() {
	c.mu.Lock()
	c.closed = true
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.cancel()
}

// setStatusLocked updates the status and notifies the listener. The
// callback runs in its own goroutine so a listener that re-enters the
// coalescer cannot deadlock.
func (c *Coalescer) setStatusLocked(s Status) {
	c.status = s
	if c.onStatus != nil {
		fn := c.onStatus
		go fn(s)
	}
}
