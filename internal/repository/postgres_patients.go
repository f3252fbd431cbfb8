package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/lib/pq"
)

// PostgresPatientsRepository implements PatientsRepository on the
// patients and patient_baselines tables.
type PostgresPatientsRepository struct {
	db *sql.DB
}

func NewPostgresPatientsRepository(db *sql.DB) *PostgresPatientsRepository {
	return &PostgresPatientsRepository{db: db}
}

const patientColumns = `
	patient_id,
	hospital_id,
	name,
	record_number,
	bed,
	ward,
	birth_date,
	hospital_admission,
	icu_admission,
	expected_discharge,
	allergies,
	created_at`

func scanPatient(s rowScanner) (*domain.Patient, error) {
	var p domain.Patient
	var bed, allergies sql.NullString
	var hospitalAdmission, icuAdmission, expectedDischarge sql.NullTime

	if err := s.Scan(
		&p.PatientID,
		&p.HospitalID,
		&p.Name,
		&p.RecordNumber,
		&bed,
		&p.Ward,
		&p.BirthDate,
		&hospitalAdmission,
		&icuAdmission,
		&expectedDischarge,
		&allergies,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Bed = bed.String
	p.Allergies = allergies.String
	if hospitalAdmission.Valid {
		t := hospitalAdmission.Time
		p.HospitalAdmission = &t
	}
	if icuAdmission.Valid {
		t := icuAdmission.Time
		p.ICUAdmission = &t
	}
	if expectedDischarge.Valid {
		t := expectedDischarge.Time
		p.ExpectedDischarge = &t
	}

	return &p, nil
}

func (r *PostgresPatientsRepository) ListPatients(ctx context.Context, hospitalID string) ([]*domain.Patient, error) {
	query := `SELECT` + patientColumns + `
		FROM patients
		WHERE hospital_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []*domain.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, nil
}

func (r *PostgresPatientsRepository) GetPatient(ctx context.Context, hospitalID, patientID string) (*domain.Patient, error) {
	query := `SELECT` + patientColumns + `
		FROM patients
		WHERE hospital_id = $1 AND patient_id = $2`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, hospitalID, patientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return p, nil
}

func (r *PostgresPatientsRepository) CreatePatient(ctx context.Context, patient *domain.Patient) (string, error) {
	query := `
		INSERT INTO patients (
			hospital_id,
			name,
			record_number,
			bed,
			ward,
			birth_date,
			hospital_admission,
			icu_admission,
			expected_discharge,
			allergies
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING patient_id`

	var patientID string
	err := r.db.QueryRowContext(ctx, query,
		patient.HospitalID,
		patient.Name,
		patient.RecordNumber,
		nullString(patient.Bed),
		patient.Ward,
		patient.BirthDate,
		patient.HospitalAdmission,
		patient.ICUAdmission,
		patient.ExpectedDischarge,
		nullString(patient.Allergies),
	).Scan(&patientID)
	if err != nil {
		return "", fmt.Errorf("failed to create patient: %w", err)
	}

	return patientID, nil
}

func (r *PostgresPatientsRepository) GetBaseline(ctx context.Context, patientID string) (*domain.PatientBaseline, error) {
	query := `
		SELECT
			patient_id,
			saps3,
			diagnosis,
			secondary_diagnoses,
			comorbidities,
			admission_history,
			past_history,
			usual_medications,
			vasoactive_drugs,
			vasoactive_drugs_detail,
			mechanical_ventilation,
			airway,
			devices
		FROM patient_baselines
		WHERE patient_id = $1`

	var b domain.PatientBaseline
	var saps3 sql.NullInt32
	var diagnosis, secondary, comorbidities sql.NullString
	var admissionHistory, pastHistory, usualMedications, vasoDetail sql.NullString
	var airway string
	var devices pq.StringArray

	err := r.db.QueryRowContext(ctx, query, patientID).Scan(
		&b.PatientID,
		&saps3,
		&diagnosis,
		&secondary,
		&comorbidities,
		&admissionHistory,
		&pastHistory,
		&usualMedications,
		&b.VasoactiveDrugs,
		&vasoDetail,
		&b.MechanicalVentilation,
		&airway,
		&devices,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query baseline: %w", err)
	}

	if saps3.Valid {
		v := int(saps3.Int32)
		b.SAPS3 = &v
	}
	b.Diagnosis = diagnosis.String
	b.SecondaryDiagnoses = secondary.String
	b.Comorbidities = comorbidities.String
	b.AdmissionHistory = admissionHistory.String
	b.PastHistory = pastHistory.String
	b.UsualMedications = usualMedications.String
	b.VasoactiveDrugsDetail = vasoDetail.String
	b.Airway = domain.AirwayMode(airway)
	b.Devices = []string(devices)
	if b.Devices == nil {
		b.Devices = []string{}
	}

	return &b, nil
}

func (r *PostgresPatientsRepository) UpsertBaseline(ctx context.Context, baseline *domain.PatientBaseline) error {
	query := `
		INSERT INTO patient_baselines (
			patient_id,
			saps3,
			diagnosis,
			secondary_diagnoses,
			comorbidities,
			admission_history,
			past_history,
			usual_medications,
			vasoactive_drugs,
			vasoactive_drugs_detail,
			mechanical_ventilation,
			airway,
			devices
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (patient_id)
		DO UPDATE SET
			saps3 = EXCLUDED.saps3,
			diagnosis = EXCLUDED.diagnosis,
			secondary_diagnoses = EXCLUDED.secondary_diagnoses,
			comorbidities = EXCLUDED.comorbidities,
			admission_history = EXCLUDED.admission_history,
			past_history = EXCLUDED.past_history,
			usual_medications = EXCLUDED.usual_medications,
			vasoactive_drugs = EXCLUDED.vasoactive_drugs,
			vasoactive_drugs_detail = EXCLUDED.vasoactive_drugs_detail,
			mechanical_ventilation = EXCLUDED.mechanical_ventilation,
			airway = EXCLUDED.airway,
			devices = EXCLUDED.devices`

	_, err := r.db.ExecContext(ctx, query,
		baseline.PatientID,
		nullInt(baseline.SAPS3),
		nullString(baseline.Diagnosis),
		nullString(baseline.SecondaryDiagnoses),
		nullString(baseline.Comorbidities),
		nullString(baseline.AdmissionHistory),
		nullString(baseline.PastHistory),
		nullString(baseline.UsualMedications),
		baseline.VasoactiveDrugs,
		nullString(baseline.VasoactiveDrugsDetail),
		baseline.MechanicalVentilation,
		string(baseline.Airway),
		pq.Array(baseline.Devices),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert baseline: %w", err)
	}

	return nil
}
