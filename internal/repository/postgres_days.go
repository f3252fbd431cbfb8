package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/lib/pq"
)

// PostgresDaysRepository implements DaysRepository on the day_records table.
type PostgresDaysRepository struct {
	db *sql.DB
}

func NewPostgresDaysRepository(db *sql.DB) *PostgresDaysRepository {
	return &PostgresDaysRepository{db: db}
}

// dayColumns is the select list every day query shares; scanDay must
// match its order.
const dayColumns = `
	day_id,
	patient_id,
	record_date,
	icu_day,
	daily_plan,
	saps3,
	diagnosis,
	secondary_diagnoses,
	comorbidities,
	admission_history,
	past_history,
	usual_medications,
	neurologic,
	respiratory,
	cardiovascular,
	renal,
	gastrointestinal,
	infectious,
	exam_notes,
	vasoactive_drugs,
	vasoactive_drugs_detail,
	mechanical_ventilation,
	airway,
	devices,
	created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(s rowScanner) (*domain.DayRecord, error) {
	var day domain.DayRecord
	var dailyPlan, diagnosis, secondary, comorbidities sql.NullString
	var admissionHistory, pastHistory, usualMedications sql.NullString
	var neurologic, respiratory, cardiovascular, renal sql.NullString
	var gastrointestinal, infectious, examNotes, vasoDetail sql.NullString
	var saps3 sql.NullInt32
	var airway string
	var devices pq.StringArray

	if err := s.Scan(
		&day.DayID,
		&day.PatientID,
		&day.Date,
		&day.ICUDay,
		&dailyPlan,
		&saps3,
		&diagnosis,
		&secondary,
		&comorbidities,
		&admissionHistory,
		&pastHistory,
		&usualMedications,
		&neurologic,
		&respiratory,
		&cardiovascular,
		&renal,
		&gastrointestinal,
		&infectious,
		&examNotes,
		&day.VasoactiveDrugs,
		&vasoDetail,
		&day.MechanicalVentilation,
		&airway,
		&devices,
		&day.CreatedAt,
	); err != nil {
		return nil, err
	}

	day.DailyPlan = dailyPlan.String
	if saps3.Valid {
		v := int(saps3.Int32)
		day.SAPS3 = &v
	}
	day.Diagnosis = diagnosis.String
	day.SecondaryDiagnoses = secondary.String
	day.Comorbidities = comorbidities.String
	day.AdmissionHistory = admissionHistory.String
	day.PastHistory = pastHistory.String
	day.UsualMedications = usualMedications.String
	day.Neurologic = neurologic.String
	day.Respiratory = respiratory.String
	day.Cardiovascular = cardiovascular.String
	day.Renal = renal.String
	day.Gastrointestinal = gastrointestinal.String
	day.Infectious = infectious.String
	day.ExamNotes = examNotes.String
	day.VasoactiveDrugsDetail = vasoDetail.String
	day.Airway = domain.AirwayMode(airway)
	day.Devices = []string(devices)
	if day.Devices == nil {
		day.Devices = []string{}
	}

	return &day, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*p), Valid: true}
}

func (r *PostgresDaysRepository) ListDays(ctx context.Context, patientID string) ([]*domain.DayRecord, error) {
	query := `SELECT` + dayColumns + `
		FROM day_records
		WHERE patient_id = $1
		ORDER BY record_date DESC, icu_day DESC`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []*domain.DayRecord
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}

	return days, nil
}

func (r *PostgresDaysRepository) GetDay(ctx context.Context, patientID, dayID string) (*domain.DayRecord, error) {
	query := `SELECT` + dayColumns + `
		FROM day_records
		WHERE patient_id = $1 AND day_id = $2`

	day, err := scanDay(r.db.QueryRowContext(ctx, query, patientID, dayID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query day: %w", err)
	}
	return day, nil
}

func (r *PostgresDaysRepository) LatestDay(ctx context.Context, patientID string) (*domain.DayRecord, error) {
	query := `SELECT` + dayColumns + `
		FROM day_records
		WHERE patient_id = $1
		ORDER BY record_date DESC, icu_day DESC
		LIMIT 1`

	day, err := scanDay(r.db.QueryRowContext(ctx, query, patientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest day: %w", err)
	}
	return day, nil
}

func (r *PostgresDaysRepository) LatestDayBefore(ctx context.Context, patientID string, date time.Time) (*domain.DayRecord, error) {
	query := `SELECT` + dayColumns + `
		FROM day_records
		WHERE patient_id = $1 AND record_date < $2
		ORDER BY record_date DESC, icu_day DESC
		LIMIT 1`

	day, err := scanDay(r.db.QueryRowContext(ctx, query, patientID, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query preceding day: %w", err)
	}
	return day, nil
}

func (r *PostgresDaysRepository) CountDays(ctx context.Context, patientID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM day_records WHERE patient_id = $1`,
		patientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count days: %w", err)
	}
	return count, nil
}

func (r *PostgresDaysRepository) CreateDay(ctx context.Context, day *domain.DayRecord) (string, error) {
	query := `
		INSERT INTO day_records (
			patient_id,
			record_date,
			icu_day,
			daily_plan,
			saps3,
			diagnosis,
			secondary_diagnoses,
			comorbidities,
			admission_history,
			past_history,
			usual_medications,
			neurologic,
			respiratory,
			cardiovascular,
			renal,
			gastrointestinal,
			infectious,
			exam_notes,
			vasoactive_drugs,
			vasoactive_drugs_detail,
			mechanical_ventilation,
			airway,
			devices
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING day_id`

	var dayID string
	err := r.db.QueryRowContext(ctx, query,
		day.PatientID,
		day.Date,
		day.ICUDay,
		nullString(day.DailyPlan),
		nullInt(day.SAPS3),
		nullString(day.Diagnosis),
		nullString(day.SecondaryDiagnoses),
		nullString(day.Comorbidities),
		nullString(day.AdmissionHistory),
		nullString(day.PastHistory),
		nullString(day.UsualMedications),
		nullString(day.Neurologic),
		nullString(day.Respiratory),
		nullString(day.Cardiovascular),
		nullString(day.Renal),
		nullString(day.Gastrointestinal),
		nullString(day.Infectious),
		nullString(day.ExamNotes),
		day.VasoactiveDrugs,
		nullString(day.VasoactiveDrugsDetail),
		day.MechanicalVentilation,
		string(day.Airway),
		pq.Array(day.Devices),
	).Scan(&dayID)
	if err != nil {
		return "", fmt.Errorf("failed to create day: %w", err)
	}

	return dayID, nil
}

func (r *PostgresDaysRepository) UpdateDay(ctx context.Context, day *domain.DayRecord) error {
	query := `
		UPDATE day_records SET
			daily_plan = $3,
			saps3 = $4,
			diagnosis = $5,
			secondary_diagnoses = $6,
			comorbidities = $7,
			admission_history = $8,
			past_history = $9,
			usual_medications = $10,
			neurologic = $11,
			respiratory = $12,
			cardiovascular = $13,
			renal = $14,
			gastrointestinal = $15,
			infectious = $16,
			exam_notes = $17,
			vasoactive_drugs = $18,
			vasoactive_drugs_detail = $19,
			mechanical_ventilation = $20,
			airway = $21,
			devices = $22
		WHERE patient_id = $1 AND day_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		day.PatientID,
		day.DayID,
		nullString(day.DailyPlan),
		nullInt(day.SAPS3),
		nullString(day.Diagnosis),
		nullString(day.SecondaryDiagnoses),
		nullString(day.Comorbidities),
		nullString(day.AdmissionHistory),
		nullString(day.PastHistory),
		nullString(day.UsualMedications),
		nullString(day.Neurologic),
		nullString(day.Respiratory),
		nullString(day.Cardiovascular),
		nullString(day.Renal),
		nullString(day.Gastrointestinal),
		nullString(day.Infectious),
		nullString(day.ExamNotes),
		day.VasoactiveDrugs,
		nullString(day.VasoactiveDrugsDetail),
		day.MechanicalVentilation,
		string(day.Airway),
		pq.Array(day.Devices),
	)
	if err != nil {
		return fmt.Errorf("failed to update day: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
