package domain

import "time"

// AirwayMode is the airway device in use for a day.
type AirwayMode string

const (
	AirwayETT   AirwayMode = "ETT"   // endotracheal tube
	AirwayTrach AirwayMode = "TRACH" // tracheostomy
	AirwayNone  AirwayMode = "NONE"
)

// ValidAirwayMode reports whether m is one of the known modes.
func ValidAirwayMode(m AirwayMode) bool {
	switch m {
	case AirwayETT, AirwayTrach, AirwayNone:
		return true
	}
	return false
}

// ClinicalFields is the editable clinical field set of a day record.
// The same set (minus the day-only organ-system and exam notes) is
// mirrored into PatientBaseline on every save.
type ClinicalFields struct {
	SAPS3              *int   `db:"saps3"`               // INTEGER, nullable
	Diagnosis          string `db:"diagnosis"`           // TEXT, nullable
	SecondaryDiagnoses string `db:"secondary_diagnoses"` // TEXT, nullable
	Comorbidities      string `db:"comorbidities"`       // TEXT, nullable
	AdmissionHistory   string `db:"admission_history"`   // TEXT, nullable
	PastHistory        string `db:"past_history"`        // TEXT, nullable
	UsualMedications   string `db:"usual_medications"`   // TEXT, nullable

	// Day-only organ-system notes (not tracked by the baseline)
	Neurologic       string `db:"neurologic"`       // TEXT, nullable
	Respiratory      string `db:"respiratory"`      // TEXT, nullable
	Cardiovascular   string `db:"cardiovascular"`   // TEXT, nullable
	Renal            string `db:"renal"`            // TEXT, nullable
	Gastrointestinal string `db:"gastrointestinal"` // TEXT, nullable
	Infectious       string `db:"infectious"`       // TEXT, nullable
	ExamNotes        string `db:"exam_notes"`       // TEXT, nullable

	// Supports
	VasoactiveDrugs       bool       `db:"vasoactive_drugs"`        // BOOLEAN, NOT NULL, DEFAULT FALSE
	VasoactiveDrugsDetail string     `db:"vasoactive_drugs_detail"` // TEXT, nullable
	MechanicalVentilation bool       `db:"mechanical_ventilation"`  // BOOLEAN, NOT NULL, DEFAULT FALSE
	Airway                AirwayMode `db:"airway"`                  // VARCHAR(10), NOT NULL, DEFAULT 'NONE'
	Devices               []string   `db:"devices"`                 // TEXT[], NOT NULL, DEFAULT '{}'
}

// DayRecord is one clinical evolution entry for a patient for a given
// calendar date. The ICU-day ordinal is assigned at creation and never
// changes; records are never deleted.
type DayRecord struct {
	// Primary key
	DayID string `db:"day_id"` // UUID, PRIMARY KEY

	PatientID string `db:"patient_id"` // UUID, NOT NULL

	// Record date. Stored as an instant but compared by calendar date.
	Date time.Time `db:"record_date"` // TIMESTAMPTZ, NOT NULL

	// ICU-day ordinal: count of recorded days, not calendar days elapsed.
	// Unique and strictly increasing per patient.
	ICUDay int `db:"icu_day"` // INTEGER, NOT NULL, >= 1

	// Per-day work product. Never carried forward into new days.
	DailyPlan string `db:"daily_plan"` // TEXT, nullable

	ClinicalFields

	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, NOT NULL, DEFAULT now()
}
