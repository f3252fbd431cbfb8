package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/google/uuid"
)

// MemoryPatientsRepository keeps patients and baselines in memory for
// DB-less dev runs and tests.
type MemoryPatientsRepository struct {
	mu        sync.RWMutex
	patients  map[string]*domain.Patient         // patientID -> patient
	baselines map[string]*domain.PatientBaseline // patientID -> baseline
}

func NewMemoryPatientsRepository() *MemoryPatientsRepository {
	return &MemoryPatientsRepository{
		patients:  map[string]*domain.Patient{},
		baselines: map[string]*domain.PatientBaseline{},
	}
}

func copyPatient(p *domain.Patient) *domain.Patient {
	cp := *p
	return &cp
}

func copyBaseline(b *domain.PatientBaseline) *domain.PatientBaseline {
	cp := *b
	cp.Devices = append([]string(nil), b.Devices...)
	if b.SAPS3 != nil {
		v := *b.SAPS3
		cp.SAPS3 = &v
	}
	return &cp
}

func (r *MemoryPatientsRepository) ListPatients(_ context.Context, hospitalID string) ([]*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var patients []*domain.Patient
	for _, p := range r.patients {
		if p.HospitalID == hospitalID {
			patients = append(patients, copyPatient(p))
		}
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].CreatedAt.After(patients[j].CreatedAt)
	})
	return patients, nil
}

func (r *MemoryPatientsRepository) GetPatient(_ context.Context, hospitalID, patientID string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[patientID]
	if !ok || p.HospitalID != hospitalID {
		// tenant mismatch is indistinguishable from absence
		return nil, domain.ErrNotFound
	}
	return copyPatient(p), nil
}

func (r *MemoryPatientsRepository) CreatePatient(_ context.Context, patient *domain.Patient) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyPatient(patient)
	cp.PatientID = uuid.NewString()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.patients[cp.PatientID] = cp
	return cp.PatientID, nil
}

func (r *MemoryPatientsRepository) GetBaseline(_ context.Context, patientID string) (*domain.PatientBaseline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.baselines[patientID]
	if !ok {
		return nil, nil
	}
	return copyBaseline(b), nil
}

func (r *MemoryPatientsRepository) UpsertBaseline(_ context.Context, baseline *domain.PatientBaseline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.baselines[baseline.PatientID] = copyBaseline(baseline)
	return nil
}
