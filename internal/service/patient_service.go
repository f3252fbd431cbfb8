package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ViniDeiro/daily-icu/internal/domain"
	"github.com/ViniDeiro/daily-icu/internal/repository"

	"go.uber.org/zap"
)

// PatientService manages patient registration and lookup within a
// hospital tenant.
type PatientService interface {
	ListPatients(ctx context.Context, hospitalID string) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, hospitalID, patientID string) (*PatientDetail, error)
	CreatePatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
}

// PatientDetail is a patient together with the clinical baseline
// snapshot. Baseline is never nil for a registered patient.
type PatientDetail struct {
	Patient  *domain.Patient
	Baseline *domain.PatientBaseline
}

type patientService struct {
	patientsRepo repository.PatientsRepository
	logger       *zap.Logger
}

func NewPatientService(patientsRepo repository.PatientsRepository, logger *zap.Logger) PatientService {
	return &patientService{patientsRepo: patientsRepo, logger: logger}
}

func (s *patientService) ListPatients(ctx context.Context, hospitalID string) ([]*domain.Patient, error) {
	patients, err := s.patientsRepo.ListPatients(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *patientService) GetPatient(ctx context.Context, hospitalID, patientID string) (*PatientDetail, error) {
	patient, err := s.patientsRepo.GetPatient(ctx, hospitalID, patientID)
	if err != nil {
		return nil, err
	}

	baseline, err := s.patientsRepo.GetBaseline(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	if baseline == nil {
		// Registration writes an empty baseline, but patients imported
		// before that behavior gained one lazily.
		baseline = emptyBaseline(patientID)
	}

	return &PatientDetail{Patient: patient, Baseline: baseline}, nil
}

func (s *patientService) CreatePatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	if strings.TrimSpace(patient.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(patient.RecordNumber) == "" {
		return nil, fmt.Errorf("%w: record number is required", domain.ErrValidation)
	}
	if patient.BirthDate.IsZero() {
		return nil, fmt.Errorf("%w: birth date is required", domain.ErrValidation)
	}

	patientID, err := s.patientsRepo.CreatePatient(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	// Every patient carries a baseline row from registration on. It
	// starts empty and is refreshed by day saves.
	if err := s.patientsRepo.UpsertBaseline(ctx, emptyBaseline(patientID)); err != nil {
		return nil, fmt.Errorf("failed to create baseline: %w", err)
	}

	s.logger.Info("patient registered",
		zap.String("hospital_id", patient.HospitalID),
		zap.String("patient_id", patientID))

	return s.patientsRepo.GetPatient(ctx, patient.HospitalID, patientID)
}

func emptyBaseline(patientID string) *domain.PatientBaseline {
	return &domain.PatientBaseline{
		PatientID: patientID,
		Airway:    domain.AirwayNone,
		Devices:   []string{},
	}
}
