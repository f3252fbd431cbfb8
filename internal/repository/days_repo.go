package repository

import (
	"context"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// DaysRepository is data access for day records. Callers resolve the
// patient within the hospital tenant first (PatientsRepository), so these
// methods take the already-authorized patient id.
type DaysRepository interface {
	// ListDays returns all days for the patient, record date descending,
	// ties broken by ICU-day ordinal descending.
	ListDays(ctx context.Context, patientID string) ([]*domain.DayRecord, error)

	// GetDay returns the day, or domain.ErrNotFound when it does not
	// exist or belongs to another patient.
	GetDay(ctx context.Context, patientID, dayID string) (*domain.DayRecord, error)

	// LatestDay returns the day with the maximum record date, or nil
	// when the patient has no days.
	LatestDay(ctx context.Context, patientID string) (*domain.DayRecord, error)

	// LatestDayBefore returns the day with the latest record date
	// strictly before date, or nil when none precedes it.
	LatestDayBefore(ctx context.Context, patientID string, date time.Time) (*domain.DayRecord, error)

	// CountDays returns the number of recorded days for the patient.
	CountDays(ctx context.Context, patientID string) (int, error)

	// CreateDay persists a new day and returns its id.
	CreateDay(ctx context.Context, day *domain.DayRecord) (string, error)

	// UpdateDay overwrites the mutable fields of an existing day. The
	// record date and ICU-day ordinal are immutable and not written.
	UpdateDay(ctx context.Context, day *domain.DayRecord) error
}
