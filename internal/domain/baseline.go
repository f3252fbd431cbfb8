package domain

// PatientBaseline maps to the patient_baselines table: one row per
// patient, created at registration, never deleted while the patient
// exists. It is a last-write-wins snapshot of the patient's current
// clinical state, refreshed as a side effect of every day save, and is
// the carry-forward source when a patient has no prior day records.
type PatientBaseline struct {
	PatientID string `db:"patient_id"` // UUID, PRIMARY KEY, FK patients

	SAPS3              *int   `db:"saps3"`               // INTEGER, nullable
	Diagnosis          string `db:"diagnosis"`           // TEXT, nullable
	SecondaryDiagnoses string `db:"secondary_diagnoses"` // TEXT, nullable
	Comorbidities      string `db:"comorbidities"`       // TEXT, nullable
	AdmissionHistory   string `db:"admission_history"`   // TEXT, nullable
	PastHistory        string `db:"past_history"`        // TEXT, nullable
	UsualMedications   string `db:"usual_medications"`   // TEXT, nullable

	VasoactiveDrugs       bool       `db:"vasoactive_drugs"`        // BOOLEAN, NOT NULL, DEFAULT FALSE
	VasoactiveDrugsDetail string     `db:"vasoactive_drugs_detail"` // TEXT, nullable
	MechanicalVentilation bool       `db:"mechanical_ventilation"`  // BOOLEAN, NOT NULL, DEFAULT FALSE
	Airway                AirwayMode `db:"airway"`                  // VARCHAR(10), NOT NULL, DEFAULT 'NONE'
	Devices               []string   `db:"devices"`                 // TEXT[], NOT NULL, DEFAULT '{}'
}
