package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/clock"
	"github.com/ViniDeiro/daily-icu/internal/domain"
	"github.com/ViniDeiro/daily-icu/internal/repository"
	"github.com/ViniDeiro/daily-icu/internal/store"

	"go.uber.org/zap"
)

// EvolutionService manages per-patient daily evolution records: day
// creation with carry-forward seeding and ordinal assignment, guarded
// updates with the baseline mirror side effect, and the plan carry-over
// helper.
type EvolutionService interface {
	ListDays(ctx context.Context, hospitalID, patientID string) ([]*domain.DayRecord, error)
	GetDay(ctx context.Context, hospitalID, patientID, dayID string) (*domain.DayRecord, error)
	CreateDay(ctx context.Context, hospitalID, patientID string, req CreateDayRequest) (*domain.DayRecord, error)
	UpdateDay(ctx context.Context, hospitalID, patientID, dayID string, override bool, patch DayPatch) (*domain.DayRecord, error)
	CopyPreviousPlan(ctx context.Context, hospitalID, patientID, dayID string) (string, error)
}

// CreateDayRequest carries the only caller-supplied values for a new
// day. Everything else is seeded.
type CreateDayRequest struct {
	Date      time.Time
	DailyPlan string
}

// DayPatch is a partial update: nil fields keep the stored value, a nil
// Devices slice keeps the stored list. The record date and ICU-day
// ordinal are not patchable.
type DayPatch struct {
	DailyPlan *string

	SAPS3              *int
	Diagnosis          *string
	SecondaryDiagnoses *string
	Comorbidities      *string
	AdmissionHistory   *string
	PastHistory        *string
	UsualMedications   *string

	Neurologic       *string
	Respiratory      *string
	Cardiovascular   *string
	Renal            *string
	Gastrointestinal *string
	Infectious       *string
	ExamNotes        *string

	VasoactiveDrugs       *bool
	VasoactiveDrugsDetail *string
	MechanicalVentilation *bool
	Airway                *domain.AirwayMode
	Devices               []string
}

func (p *DayPatch) apply(day *domain.DayRecord) {
	if p.DailyPlan != nil {
		day.DailyPlan = *p.DailyPlan
	}
	if p.SAPS3 != nil {
		v := *p.SAPS3
		day.SAPS3 = &v
	}
	if p.Diagnosis != nil {
		day.Diagnosis = *p.Diagnosis
	}
	if p.SecondaryDiagnoses != nil {
		day.SecondaryDiagnoses = *p.SecondaryDiagnoses
	}
	if p.Comorbidities != nil {
		day.Comorbidities = *p.Comorbidities
	}
	if p.AdmissionHistory != nil {
		day.AdmissionHistory = *p.AdmissionHistory
	}
	if p.PastHistory != nil {
		day.PastHistory = *p.PastHistory
	}
	if p.UsualMedications != nil {
		day.UsualMedications = *p.UsualMedications
	}
	if p.Neurologic != nil {
		day.Neurologic = *p.Neurologic
	}
	if p.Respiratory != nil {
		day.Respiratory = *p.Respiratory
	}
	if p.Cardiovascular != nil {
		day.Cardiovascular = *p.Cardiovascular
	}
	if p.Renal != nil {
		day.Renal = *p.Renal
	}
	if p.Gastrointestinal != nil {
		day.Gastrointestinal = *p.Gastrointestinal
	}
	if p.Infectious != nil {
		day.Infectious = *p.Infectious
	}
	if p.ExamNotes != nil {
		day.ExamNotes = *p.ExamNotes
	}
	if p.VasoactiveDrugs != nil {
		day.VasoactiveDrugs = *p.VasoactiveDrugs
	}
	if p.VasoactiveDrugsDetail != nil {
		day.VasoactiveDrugsDetail = *p.VasoactiveDrugsDetail
	}
	if p.MechanicalVentilation != nil {
		day.MechanicalVentilation = *p.MechanicalVentilation
	}
	if p.Airway != nil {
		day.Airway = *p.Airway
	}
	if p.Devices != nil {
		day.Devices = append([]string{}, p.Devices...)
	}
}

type evolutionService struct {
	patientsRepo repository.PatientsRepository
	daysRepo     repository.DaysRepository
	dayCache     *store.DayListCache
	clk          clock.Clock
	logger       *zap.Logger
}

// NewEvolutionService creates the evolution service. dayCache may be
// nil when Redis is not configured.
func NewEvolutionService(
	patientsRepo repository.PatientsRepository,
	daysRepo repository.DaysRepository,
	dayCache *store.DayListCache,
	clk clock.Clock,
	logger *zap.Logger,
) EvolutionService {
	return &evolutionService{
		patientsRepo: patientsRepo,
		daysRepo:     daysRepo,
		dayCache:     dayCache,
		clk:          clk,
		logger:       logger,
	}
}

func (s *evolutionService) ListDays(ctx context.Context, hospitalID, patientID string) ([]*domain.DayRecord, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID); err != nil {
		return nil, err
	}

	if days, ok := s.dayCache.Get(ctx, patientID); ok {
		return days, nil
	}

	days, err := s.daysRepo.ListDays(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	s.dayCache.Put(ctx, patientID, days)
	return days, nil
}

func (s *evolutionService) GetDay(ctx context.Context, hospitalID, patientID, dayID string) (*domain.DayRecord, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID); err != nil {
		return nil, err
	}
	return s.daysRepo.GetDay(ctx, patientID, dayID)
}

func (s *evolutionService) CreateDay(ctx context.Context, hospitalID, patientID string, req CreateDayRequest) (*domain.DayRecord, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	// The ordinal counts recorded days, not calendar days elapsed. The
	// latest day by date carries the highest ordinal.
	ordinal := 1
	latest, err := s.daysRepo.LatestDay(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest day: %w", err)
	}
	if latest != nil {
		ordinal = latest.ICUDay + 1
	} else {
		count, err := s.daysRepo.CountDays(ctx, patientID)
		if err != nil {
			return nil, fmt.Errorf("failed to count days: %w", err)
		}
		ordinal = count + 1
	}

	fields, err := s.resolveSeed(ctx, patientID, req.Date)
	if err != nil {
		return nil, err
	}

	day := &domain.DayRecord{
		PatientID:      patientID,
		Date:           req.Date,
		ICUDay:         ordinal,
		DailyPlan:      req.DailyPlan,
		ClinicalFields: fields,
	}

	dayID, err := s.daysRepo.CreateDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to create day: %w", err)
	}
	day.DayID = dayID
	s.dayCache.Invalidate(ctx, patientID)

	s.logger.Info("day created",
		zap.String("patient_id", patientID),
		zap.String("day_id", dayID),
		zap.Int("icu_day", ordinal))

	return s.daysRepo.GetDay(ctx, patientID, dayID)
}

// resolveSeed picks the carry-forward source: the day with the latest
// date strictly before the new date, falling back to the baseline when
// no day precedes it.
func (s *evolutionService) resolveSeed(ctx context.Context, patientID string, date time.Time) (domain.ClinicalFields, error) {
	prev, err := s.daysRepo.LatestDayBefore(ctx, patientID, date)
	if err != nil {
		return domain.ClinicalFields{}, fmt.Errorf("failed to resolve previous day: %w", err)
	}
	if prev != nil {
		return SeedFromDay(prev), nil
	}

	base, err := s.patientsRepo.GetBaseline(ctx, patientID)
	if err != nil {
		return domain.ClinicalFields{}, fmt.Errorf("failed to load baseline: %w", err)
	}
	return SeedFromBaseline(base), nil
}

func (s *evolutionService) UpdateDay(ctx context.Context, hospitalID, patientID, dayID string, override bool, patch DayPatch) (*domain.DayRecord, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID); err != nil {
		return nil, err
	}
	if patch.Airway != nil && !domain.ValidAirwayMode(*patch.Airway) {
		return nil, fmt.Errorf("%w: unknown airway mode %q", domain.ErrValidation, *patch.Airway)
	}

	day, err := s.daysRepo.GetDay(ctx, patientID, dayID)
	if err != nil {
		return nil, err
	}

	// Checked at the write boundary, against the clock, every time.
	if err := AuthorizeWrite(day.Date, override, s.clk.Now()); err != nil {
		return nil, err
	}

	patch.apply(day)

	if err := s.daysRepo.UpdateDay(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to update day: %w", err)
	}

	// Mirror the clinical fields into the baseline so the next
	// baseline-seeded day starts from the latest saved state. Last
	// write wins.
	if err := s.patientsRepo.UpsertBaseline(ctx, baselineFromDay(day)); err != nil {
		return nil, fmt.Errorf("failed to mirror baseline: %w", err)
	}
	s.dayCache.Invalidate(ctx, patientID)

	return day, nil
}

func (s *evolutionService) CopyPreviousPlan(ctx context.Context, hospitalID, patientID, dayID string) (string, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID); err != nil {
		return "", err
	}

	day, err := s.daysRepo.GetDay(ctx, patientID, dayID)
	if err != nil {
		return "", err
	}

	prev, err := s.daysRepo.LatestDayBefore(ctx, patientID, day.Date)
	if err != nil {
		return "", fmt.Errorf("failed to resolve previous day: %w", err)
	}
	if prev == nil {
		return "", nil
	}
	return prev.DailyPlan, nil
}

func baselineFromDay(day *domain.DayRecord) *domain.PatientBaseline {
	base := &domain.PatientBaseline{
		PatientID:             day.PatientID,
		Diagnosis:             day.Diagnosis,
		SecondaryDiagnoses:    day.SecondaryDiagnoses,
		Comorbidities:         day.Comorbidities,
		AdmissionHistory:      day.AdmissionHistory,
		PastHistory:           day.PastHistory,
		UsualMedications:      day.UsualMedications,
		VasoactiveDrugs:       day.VasoactiveDrugs,
		VasoactiveDrugsDetail: day.VasoactiveDrugsDetail,
		MechanicalVentilation: day.MechanicalVentilation,
		Airway:                day.Airway,
		Devices:               append([]string{}, day.Devices...),
	}
	if day.SAPS3 != nil {
		v := *day.SAPS3
		base.SAPS3 = &v
	}
	return base
}
