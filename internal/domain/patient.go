package domain

import "time"

// Patient maps to the patients table (hospital tenant scope).
type Patient struct {
	// Primary key
	PatientID string `db:"patient_id"` // UUID, PRIMARY KEY

	// Tenant
	HospitalID string `db:"hospital_id"` // UUID, NOT NULL

	// Identity
	Name         string `db:"name"`          // VARCHAR(200), NOT NULL
	RecordNumber string `db:"record_number"` // VARCHAR(50), NOT NULL (hospital registry number)
	Bed          string `db:"bed"`           // VARCHAR(20), nullable
	Ward         string `db:"ward"`          // VARCHAR(50), NOT NULL, DEFAULT 'ICU'

	// Dates
	BirthDate         time.Time  `db:"birth_date"`         // DATE, NOT NULL
	HospitalAdmission *time.Time `db:"hospital_admission"` // DATE, nullable
	ICUAdmission      *time.Time `db:"icu_admission"`      // DATE, nullable
	ExpectedDischarge *time.Time `db:"expected_discharge"` // DATE, nullable

	// Clinical notes
	Allergies string `db:"allergies"` // TEXT, nullable

	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, NOT NULL, DEFAULT now()
}
