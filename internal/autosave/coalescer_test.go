package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/clock"
	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 10 * time.Millisecond

// settableClock lets a test move the wall clock between schedule and
// fire.
type settableClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *settableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *settableClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// recorder collects the drafts the coalescer actually wrote.
type recorder struct {
	mu     sync.Mutex
	saved  []Draft
	err    error
	gate   chan struct{} // when non-nil, save blocks until the channel closes
	notify chan struct{}
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan struct{}, 16)}
}

func (r *recorder) save(_ context.Context, d Draft) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.saved = append(r.saved, d)
	err := r.err
	r.mu.Unlock()
	r.notify <- struct{}{}
	return err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func (r *recorder) last() Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[len(r.saved)-1]
}

func (r *recorder) waitForSave(t *testing.T) {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a save")
	}
}

func today() time.Time {
	return time.Date(2025, 12, 15, 10, 0, 0, 0, time.Local)
}

func draftWithPlan(plan string) Draft {
	return Draft{
		DayID:     "day-1",
		DayDate:   today(),
		DailyPlan: plan,
	}
}

func newTestCoalescer(r *recorder, clk clock.Clock) *Coalescer {
	return New(r.save, WithDelay(testDelay), WithClock(clk))
}

func TestSchedule_TrailingEditWins(t *testing.T) {
	r := newRecorder()
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	for _, plan := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		c.Schedule(draftWithPlan(plan))
	}
	r.waitForSave(t)

	assert.Equal(t, 1, r.count())
	assert.Equal(t, "abcde", r.last().DailyPlan)
}

func TestSchedule_SameFingerprintIsDropped(t *testing.T) {
	r := newRecorder()
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	c.Schedule(draftWithPlan("keep sedation"))
	r.waitForSave(t)
	require.Equal(t, 1, r.count())

	// Identical content again: no second write.
	c.Schedule(draftWithPlan("keep sedation"))
	time.Sleep(5 * testDelay)

	assert.Equal(t, 1, r.count())
	assert.Equal(t, StatusSaved, c.Status())
}

func TestSchedule_DeviceSpacingDoesNotChangeFingerprint(t *testing.T) {
	r := newRecorder()
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	d := draftWithPlan("plan")
	d.DevicesRaw = "CVC,SVD"
	c.Schedule(d)
	r.waitForSave(t)
	require.Equal(t, 1, r.count())
	assert.Equal(t, []string{"CVC", "SVD"}, r.last().Fields.Devices)

	d.DevicesRaw = " CVC , SVD , "
	c.Schedule(d)
	time.Sleep(5 * testDelay)

	assert.Equal(t, 1, r.count())
}

func TestSchedule_DayIDIsPartOfFingerprint(t *testing.T) {
	r := newRecorder()
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	c.Schedule(draftWithPlan("plan"))
	r.waitForSave(t)

	other := draftWithPlan("plan")
	other.DayID = "day-2"
	c.Schedule(other)
	r.waitForSave(t)

	assert.Equal(t, 2, r.count())
	assert.Equal(t, "day-2", r.last().DayID)
}

func TestSchedule_RetroDayWithoutOverrideNeverFires(t *testing.T) {
	r := newRecorder()
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	d := draftWithPlan("late note")
	d.DayDate = today().AddDate(0, 0, -2)
	c.Schedule(d)
	time.Sleep(5 * testDelay)

	assert.Equal(t, 0, r.count())
	assert.Equal(t, StatusIdle, c.Status())

	d.Override = true
	c.Schedule(d)
	r.waitForSave(t)

	assert.Equal(t, 1, r.count())
}

func TestSchedule_MidnightRolloverBlocksPendingWrite(t *testing.T) {
	clk := &settableClock{t: time.Date(2025, 12, 15, 23, 59, 59, 0, time.Local)}
	r := newRecorder()
	c := New(r.save, WithDelay(50*time.Millisecond), WithClock(clk))
	defer c.Close()

	d := draftWithPlan("just before midnight")
	d.DayDate = time.Date(2025, 12, 15, 8, 0, 0, 0, time.Local)
	c.Schedule(d)

	// The date rolls over while the debounce window is still open.
	clk.Set(time.Date(2025, 12, 16, 0, 0, 1, 0, time.Local))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 0, r.count())
}

func TestRun_SingleInFlightWithRearm(t *testing.T) {
	r := newRecorder()
	r.gate = make(chan struct{})
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	c.Schedule(draftWithPlan("first"))
	// Wait until the first write is in flight.
	require.Eventually(t, func() bool {
		return c.Status() == StatusSaving
	}, 2*time.Second, time.Millisecond)

	// Changes landing mid-write must coalesce into one follow-up.
	c.Schedule(draftWithPlan("second"))
	c.Schedule(draftWithPlan("third"))
	time.Sleep(3 * testDelay)

	close(r.gate)
	r.waitForSave(t)
	r.waitForSave(t)

	assert.Equal(t, 2, r.count())
	assert.Equal(t, "third", r.last().DailyPlan)
}

func TestRun_ErrorSetsStatusWithoutRetry(t *testing.T) {
	r := newRecorder()
	r.err = errors.New("network down")
	c := newTestCoalescer(r, clock.Fixed(today()))
	defer c.Close()

	c.Schedule(draftWithPlan("plan"))
	r.waitForSave(t)

	require.Eventually(t, func() bool {
		return c.Status() == StatusError
	}, 2*time.Second, time.Millisecond)
	time.Sleep(5 * testDelay)

	assert.Equal(t, 1, r.count(), "autosave must not retry on its own")
}

func TestFlush_SkipsDebounceWindow(t *testing.T) {
	r := newRecorder()
	c := New(r.save, WithDelay(time.Hour), WithClock(clock.Fixed(today())))
	defer c.Close()

	c.Schedule(draftWithPlan("plan"))
	c.Flush()
	r.waitForSave(t)

	assert.Equal(t, 1, r.count())
}

func TestClose_CancelsPendingWrite(t *testing.T) {
	r := newRecorder()
	c := New(r.save, WithDelay(50*time.Millisecond), WithClock(clock.Fixed(today())))

	c.Schedule(draftWithPlan("never lands"))
	c.Close()
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 0, r.count())
}

func TestNormalizeDevices(t *testing.T) {
	assert.Equal(t, []string{"CVC", "SVD"}, NormalizeDevices(" CVC , SVD ,, "))
	assert.Equal(t, []string{}, NormalizeDevices("  ,  ,"))
	assert.Equal(t, []string{"PICC"}, NormalizeDevices("PICC"))
}

func TestFingerprint_StableAcrossEquivalentDrafts(t *testing.T) {
	a := Draft{DayID: "day-1", DailyPlan: "plan", DevicesRaw: "CVC,SVD"}
	b := Draft{DayID: "day-1", DailyPlan: "plan", DevicesRaw: " CVC , SVD "}
	c := Draft{DayID: "day-1", DailyPlan: "plan", Fields: domain.ClinicalFields{Devices: []string{"CVC", "SVD"}}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, Fingerprint(a), Fingerprint(c))

	changed := a
	changed.DailyPlan = "plan v2"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(changed))
}
