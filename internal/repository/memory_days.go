package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/google/uuid"
)

// MemoryDaysRepository keeps day records in memory. It backs the service
// when the DB is disabled and the service-level tests.
type MemoryDaysRepository struct {
	mu   sync.RWMutex
	days map[string]*domain.DayRecord // dayID -> record
}

func NewMemoryDaysRepository() *MemoryDaysRepository {
	return &MemoryDaysRepository{
		days: map[string]*domain.DayRecord{},
	}
}

// copyDay returns an independent copy so callers can't mutate stored
// state (matters for the devices slice).
func copyDay(d *domain.DayRecord) *domain.DayRecord {
	cp := *d
	cp.Devices = append([]string(nil), d.Devices...)
	if d.SAPS3 != nil {
		v := *d.SAPS3
		cp.SAPS3 = &v
	}
	return &cp
}

func (r *MemoryDaysRepository) ListDays(_ context.Context, patientID string) ([]*domain.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var days []*domain.DayRecord
	for _, d := range r.days {
		if d.PatientID == patientID {
			days = append(days, copyDay(d))
		}
	}
	sort.Slice(days, func(i, j int) bool {
		if !days[i].Date.Equal(days[j].Date) {
			return days[i].Date.After(days[j].Date)
		}
		return days[i].ICUDay > days[j].ICUDay
	})
	return days, nil
}

func (r *MemoryDaysRepository) GetDay(_ context.Context, patientID, dayID string) (*domain.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.days[dayID]
	if !ok || d.PatientID != patientID {
		return nil, domain.ErrNotFound
	}
	return copyDay(d), nil
}

func (r *MemoryDaysRepository) LatestDay(_ context.Context, patientID string) (*domain.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.DayRecord
	for _, d := range r.days {
		if d.PatientID != patientID {
			continue
		}
		if latest == nil || d.Date.After(latest.Date) ||
			(d.Date.Equal(latest.Date) && d.ICUDay > latest.ICUDay) {
			latest = d
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyDay(latest), nil
}

func (r *MemoryDaysRepository) LatestDayBefore(_ context.Context, patientID string, date time.Time) (*domain.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prev *domain.DayRecord
	for _, d := range r.days {
		if d.PatientID != patientID || !d.Date.Before(date) {
			continue
		}
		if prev == nil || d.Date.After(prev.Date) ||
			(d.Date.Equal(prev.Date) && d.ICUDay > prev.ICUDay) {
			prev = d
		}
	}
	if prev == nil {
		return nil, nil
	}
	return copyDay(prev), nil
}

func (r *MemoryDaysRepository) CountDays(_ context.Context, patientID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, d := range r.days {
		if d.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryDaysRepository) CreateDay(_ context.Context, day *domain.DayRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyDay(day)
	cp.DayID = uuid.NewString()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.days[cp.DayID] = cp
	return cp.DayID, nil
}

func (r *MemoryDaysRepository) UpdateDay(_ context.Context, day *domain.DayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.days[day.DayID]
	if !ok || existing.PatientID != day.PatientID {
		return domain.ErrNotFound
	}

	cp := copyDay(day)
	// record date and ordinal are immutable
	cp.Date = existing.Date
	cp.ICUDay = existing.ICUDay
	cp.CreatedAt = existing.CreatedAt
	r.days[day.DayID] = cp
	return nil
}
