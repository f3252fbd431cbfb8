package repository

import (
	"context"

	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// PatientsRepository is data access for patients and their clinical
// baselines. Every patient lookup is scoped by the hospital tenant;
// a tenant mismatch yields domain.ErrNotFound, indistinguishable from
// absence.
type PatientsRepository interface {
	ListPatients(ctx context.Context, hospitalID string) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, hospitalID, patientID string) (*domain.Patient, error)
	CreatePatient(ctx context.Context, patient *domain.Patient) (string, error)

	// GetBaseline returns the patient's baseline, or nil when none has
	// been written yet.
	GetBaseline(ctx context.Context, patientID string) (*domain.PatientBaseline, error)

	// UpsertBaseline writes the baseline snapshot (last write wins).
	UpsertBaseline(ctx context.Context, baseline *domain.PatientBaseline) error
}
