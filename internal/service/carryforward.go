package service

import (
	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// SeedFromDay builds the clinical fields for a new day by carrying the
// previous day's fields forward. The daily plan is per-day work product
// and is never part of the seed. The devices slice is always fresh so
// the new day and its source never alias.
func SeedFromDay(prev *domain.DayRecord) domain.ClinicalFields {
	if prev == nil {
		return emptyFields()
	}
	fields := prev.ClinicalFields
	fields.Devices = append([]string{}, prev.Devices...)
	if fields.SAPS3 != nil {
		v := *prev.SAPS3
		fields.SAPS3 = &v
	}
	if fields.Airway == "" {
		fields.Airway = domain.AirwayNone
	}
	return fields
}

// SeedFromBaseline builds the clinical fields for a patient's first day
// (or a day with no prior day before its date) from the baseline
// snapshot. Organ-system and exam notes are day-only and start empty.
func SeedFromBaseline(base *domain.PatientBaseline) domain.ClinicalFields {
	if base == nil {
		return emptyFields()
	}
	fields := domain.ClinicalFields{
		Diagnosis:             base.Diagnosis,
		SecondaryDiagnoses:    base.SecondaryDiagnoses,
		Comorbidities:         base.Comorbidities,
		AdmissionHistory:      base.AdmissionHistory,
		PastHistory:           base.PastHistory,
		UsualMedications:      base.UsualMedications,
		VasoactiveDrugs:       base.VasoactiveDrugs,
		VasoactiveDrugsDetail: base.VasoactiveDrugsDetail,
		MechanicalVentilation: base.MechanicalVentilation,
		Airway:                base.Airway,
		Devices:               append([]string{}, base.Devices...),
	}
	if base.SAPS3 != nil {
		v := *base.SAPS3
		fields.SAPS3 = &v
	}
	if fields.Airway == "" {
		fields.Airway = domain.AirwayNone
	}
	return fields
}

func emptyFields() domain.ClinicalFields {
	return domain.ClinicalFields{
		Airway:  domain.AirwayNone,
		Devices: []string{},
	}
}
