package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// DayListCache caches the per-patient day list between reads. Entries are
// short-lived and dropped on every write to the patient's days, so a read
// after a save always observes the new state.
type DayListCache struct {
	kv  KV
	ttl time.Duration
}

func NewDayListCache(kv KV, ttl time.Duration) *DayListCache {
	return &DayListCache{kv: kv, ttl: ttl}
}

func dayListKey(patientID string) string {
	return "days:" + patientID
}

// Get returns the cached day list, or ok=false on miss or decode failure.
func (c *DayListCache) Get(ctx context.Context, patientID string) ([]*domain.DayRecord, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.kv.Get(ctx, dayListKey(patientID))
	if err != nil {
		return nil, false
	}
	var days []*domain.DayRecord
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, false
	}
	return days, true
}

// Put stores the day list. Failures are ignored: the cache is best-effort.
func (c *DayListCache) Put(ctx context.Context, patientID string, days []*domain.DayRecord) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	_ = c.kv.Set(ctx, dayListKey(patientID), string(raw), c.ttl)
}

// Invalidate drops the cached list after any write to the patient's days.
func (c *DayListCache) Invalidate(ctx context.Context, patientID string) {
	if c == nil {
		return
	}
	_ = c.kv.Del(ctx, dayListKey(patientID))
}
