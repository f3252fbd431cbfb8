package service

import (
	"testing"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSeedFromDay_CopiesClinicalFieldsNotPlan(t *testing.T) {
	prev := &domain.DayRecord{
		DayID:     "day-1",
		PatientID: "patient-1",
		Date:      time.Date(2025, 12, 12, 8, 0, 0, 0, time.UTC),
		ICUDay:    5,
		DailyPlan: "wean norepinephrine, extubation trial",
		ClinicalFields: domain.ClinicalFields{
			SAPS3:                 intPtr(64),
			Diagnosis:             "septic shock",
			Comorbidities:         "hypertension, DM2",
			Neurologic:            "RASS -1",
			VasoactiveDrugs:       true,
			VasoactiveDrugsDetail: "norepinephrine 0.1",
			MechanicalVentilation: true,
			Airway:                domain.AirwayETT,
			Devices:               []string{"TOT", "CVC", "SVD"},
		},
	}

	fields := SeedFromDay(prev)

	assert.Equal(t, prev.ClinicalFields.Diagnosis, fields.Diagnosis)
	assert.Equal(t, prev.ClinicalFields.Neurologic, fields.Neurologic)
	assert.Equal(t, prev.ClinicalFields.Devices, fields.Devices)
	assert.True(t, fields.VasoactiveDrugs)
	assert.True(t, fields.MechanicalVentilation)
	assert.Equal(t, domain.AirwayETT, fields.Airway)
	require.NotNil(t, fields.SAPS3)
	assert.Equal(t, 64, *fields.SAPS3)
}

func TestSeedFromDay_DeviceSliceIsIndependent(t *testing.T) {
	prev := &domain.DayRecord{
		ClinicalFields: domain.ClinicalFields{
			Airway:  domain.AirwayNone,
			Devices: []string{"CVC", "SVD"},
		},
	}

	fields := SeedFromDay(prev)
	fields.Devices[0] = "PICC"
	fields.Devices = append(fields.Devices, "NG tube")

	assert.Equal(t, []string{"CVC", "SVD"}, prev.Devices)
}

func TestSeedFromDay_SAPS3PointerIsIndependent(t *testing.T) {
	prev := &domain.DayRecord{
		ClinicalFields: domain.ClinicalFields{
			SAPS3:  intPtr(50),
			Airway: domain.AirwayNone,
		},
	}

	fields := SeedFromDay(prev)
	*fields.SAPS3 = 99

	assert.Equal(t, 50, *prev.SAPS3)
}

func TestSeedFromDay_UnsetAirwayDefaultsToNone(t *testing.T) {
	fields := SeedFromDay(&domain.DayRecord{})
	assert.Equal(t, domain.AirwayNone, fields.Airway)
}

func TestSeedFromBaseline_DayOnlyNotesStartEmpty(t *testing.T) {
	base := &domain.PatientBaseline{
		PatientID:             "patient-1",
		SAPS3:                 intPtr(78),
		Diagnosis:             "septic shock",
		PastHistory:           "CABG 2019",
		VasoactiveDrugs:       true,
		MechanicalVentilation: false,
		Airway:                domain.AirwayTrach,
		Devices:               []string{"TQT"},
	}

	fields := SeedFromBaseline(base)

	assert.Equal(t, "septic shock", fields.Diagnosis)
	assert.Equal(t, "CABG 2019", fields.PastHistory)
	assert.Equal(t, domain.AirwayTrach, fields.Airway)
	assert.Equal(t, []string{"TQT"}, fields.Devices)
	require.NotNil(t, fields.SAPS3)
	assert.Equal(t, 78, *fields.SAPS3)

	assert.Empty(t, fields.Neurologic)
	assert.Empty(t, fields.Respiratory)
	assert.Empty(t, fields.ExamNotes)
}

func TestSeed_NilSourcesYieldEmptyFields(t *testing.T) {
	for _, fields := range []domain.ClinicalFields{
		SeedFromDay(nil),
		SeedFromBaseline(nil),
	} {
		assert.Nil(t, fields.SAPS3)
		assert.Empty(t, fields.Diagnosis)
		assert.False(t, fields.VasoactiveDrugs)
		assert.False(t, fields.MechanicalVentilation)
		assert.Equal(t, domain.AirwayNone, fields.Airway)
		assert.Equal(t, []string{}, fields.Devices)
	}
}
