package httpapi

import (
	"fmt"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"
	"github.com/ViniDeiro/daily-icu/internal/service"
)

// Wire shapes follow the front end's camelCase field names.

type patientDTO struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	RecordNumber      string     `json:"recordNumber"`
	Bed               string     `json:"bed,omitempty"`
	Ward              string     `json:"ward"`
	BirthDate         string     `json:"birthDate"`
	HospitalAdmission *time.Time `json:"hospitalAdmission,omitempty"`
	ICUAdmission      *time.Time `json:"icuAdmission,omitempty"`
	ExpectedDischarge *time.Time `json:"expectedDischarge,omitempty"`
	Allergies         string     `json:"allergies,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type baselineDTO struct {
	SAPS3                 *int     `json:"saps3"`
	Diagnosis             string   `json:"diagnosis"`
	SecondaryDiagnoses    string   `json:"secondaryDiagnoses"`
	Comorbidities         string   `json:"comorbidities"`
	AdmissionHistory      string   `json:"admissionHistory"`
	PastHistory           string   `json:"pastHistory"`
	UsualMedications      string   `json:"usualMedications"`
	VasoactiveDrugs       bool     `json:"vasoactiveDrugs"`
	VasoactiveDrugsDetail string   `json:"vasoactiveDrugsDetail"`
	MechanicalVentilation bool     `json:"mechanicalVentilation"`
	Airway                string   `json:"airway"`
	Devices               []string `json:"devices"`
}

type patientDetailDTO struct {
	patientDTO
	Baseline baselineDTO `json:"baseline"`
}

type dayDTO struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Date      time.Time `json:"date"`
	ICUDay    int       `json:"icuDay"`
	DailyPlan string    `json:"dailyPlan"`

	SAPS3              *int   `json:"saps3"`
	Diagnosis          string `json:"diagnosis"`
	SecondaryDiagnoses string `json:"secondaryDiagnoses"`
	Comorbidities      string `json:"comorbidities"`
	AdmissionHistory   string `json:"admissionHistory"`
	PastHistory        string `json:"pastHistory"`
	UsualMedications   string `json:"usualMedications"`

	Neurologic       string `json:"neurologic"`
	Respiratory      string `json:"respiratory"`
	Cardiovascular   string `json:"cardiovascular"`
	Renal            string `json:"renal"`
	Gastrointestinal string `json:"gastrointestinal"`
	Infectious       string `json:"infectious"`
	ExamNotes        string `json:"examNotes"`

	VasoactiveDrugs       bool     `json:"vasoactiveDrugs"`
	VasoactiveDrugsDetail string   `json:"vasoactiveDrugsDetail"`
	MechanicalVentilation bool     `json:"mechanicalVentilation"`
	Airway                string   `json:"airway"`
	Devices               []string `json:"devices"`

	CreatedAt time.Time `json:"createdAt"`
}

func toPatientDTO(p *domain.Patient) patientDTO {
	return patientDTO{
		ID:                p.PatientID,
		Name:              p.Name,
		RecordNumber:      p.RecordNumber,
		Bed:               p.Bed,
		Ward:              p.Ward,
		BirthDate:         p.BirthDate.Format("2006-01-02"),
		HospitalAdmission: p.HospitalAdmission,
		ICUAdmission:      p.ICUAdmission,
		ExpectedDischarge: p.ExpectedDischarge,
		Allergies:         p.Allergies,
		CreatedAt:         p.CreatedAt,
	}
}

func toBaselineDTO(b *domain.PatientBaseline) baselineDTO {
	devices := b.Devices
	if devices == nil {
		devices = []string{}
	}
	return baselineDTO{
		SAPS3:                 b.SAPS3,
		Diagnosis:             b.Diagnosis,
		SecondaryDiagnoses:    b.SecondaryDiagnoses,
		Comorbidities:         b.Comorbidities,
		AdmissionHistory:      b.AdmissionHistory,
		PastHistory:           b.PastHistory,
		UsualMedications:      b.UsualMedications,
		VasoactiveDrugs:       b.VasoactiveDrugs,
		VasoactiveDrugsDetail: b.VasoactiveDrugsDetail,
		MechanicalVentilation: b.MechanicalVentilation,
		Airway:                string(b.Airway),
		Devices:               devices,
	}
}

func toDayDTO(d *domain.DayRecord) dayDTO {
	devices := d.Devices
	if devices == nil {
		devices = []string{}
	}
	return dayDTO{
		ID:                    d.DayID,
		PatientID:             d.PatientID,
		Date:                  d.Date,
		ICUDay:                d.ICUDay,
		DailyPlan:             d.DailyPlan,
		SAPS3:                 d.SAPS3,
		Diagnosis:             d.Diagnosis,
		SecondaryDiagnoses:    d.SecondaryDiagnoses,
		Comorbidities:         d.Comorbidities,
		AdmissionHistory:      d.AdmissionHistory,
		PastHistory:           d.PastHistory,
		UsualMedications:      d.UsualMedications,
		Neurologic:            d.Neurologic,
		Respiratory:           d.Respiratory,
		Cardiovascular:        d.Cardiovascular,
		Renal:                 d.Renal,
		Gastrointestinal:      d.Gastrointestinal,
		Infectious:            d.Infectious,
		ExamNotes:             d.ExamNotes,
		VasoactiveDrugs:       d.VasoactiveDrugs,
		VasoactiveDrugsDetail: d.VasoactiveDrugsDetail,
		MechanicalVentilation: d.MechanicalVentilation,
		Airway:                string(d.Airway),
		Devices:               devices,
		CreatedAt:             d.CreatedAt,
	}
}

func toDayDTOs(days []*domain.DayRecord) []dayDTO {
	out := make([]dayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, toDayDTO(d))
	}
	return out
}

type createPatientRequest struct {
	Name              string     `json:"name"`
	RecordNumber      string     `json:"recordNumber"`
	Bed               string     `json:"bed"`
	Ward              string     `json:"ward"`
	BirthDate         string     `json:"birthDate"`
	HospitalAdmission *time.Time `json:"hospitalAdmission"`
	ICUAdmission      *time.Time `json:"icuAdmission"`
	ExpectedDischarge *time.Time `json:"expectedDischarge"`
	Allergies         string     `json:"allergies"`
}

type createDayRequest struct {
	Date      string `json:"date"`
	DailyPlan string `json:"dailyPlan"`
}

// updateDayRequest is a partial patch: absent fields keep the stored
// values.
type updateDayRequest struct {
	DailyPlan *string `json:"dailyPlan"`

	SAPS3              *int    `json:"saps3"`
	Diagnosis          *string `json:"diagnosis"`
	SecondaryDiagnoses *string `json:"secondaryDiagnoses"`
	Comorbidities      *string `json:"comorbidities"`
	AdmissionHistory   *string `json:"admissionHistory"`
	PastHistory        *string `json:"pastHistory"`
	UsualMedications   *string `json:"usualMedications"`

	Neurologic       *string `json:"neurologic"`
	Respiratory      *string `json:"respiratory"`
	Cardiovascular   *string `json:"cardiovascular"`
	Renal            *string `json:"renal"`
	Gastrointestinal *string `json:"gastrointestinal"`
	Infectious       *string `json:"infectious"`
	ExamNotes        *string `json:"examNotes"`

	VasoactiveDrugs       *bool    `json:"vasoactiveDrugs"`
	VasoactiveDrugsDetail *string  `json:"vasoactiveDrugsDetail"`
	MechanicalVentilation *bool    `json:"mechanicalVentilation"`
	Airway                *string  `json:"airway"`
	Devices               []string `json:"devices"`
}

func (r *updateDayRequest) toPatch() service.DayPatch {
	patch := service.DayPatch{
		DailyPlan:             r.DailyPlan,
		SAPS3:                 r.SAPS3,
		Diagnosis:             r.Diagnosis,
		SecondaryDiagnoses:    r.SecondaryDiagnoses,
		Comorbidities:         r.Comorbidities,
		AdmissionHistory:      r.AdmissionHistory,
		PastHistory:           r.PastHistory,
		UsualMedications:      r.UsualMedications,
		Neurologic:            r.Neurologic,
		Respiratory:           r.Respiratory,
		Cardiovascular:        r.Cardiovascular,
		Renal:                 r.Renal,
		Gastrointestinal:      r.Gastrointestinal,
		Infectious:            r.Infectious,
		ExamNotes:             r.ExamNotes,
		VasoactiveDrugs:       r.VasoactiveDrugs,
		VasoactiveDrugsDetail: r.VasoactiveDrugsDetail,
		MechanicalVentilation: r.MechanicalVentilation,
		Devices:               r.Devices,
	}
	if r.Airway != nil {
		m := domain.AirwayMode(*r.Airway)
		patch.Airway = &m
	}
	return patch
}

// parseDate accepts the front end's plain date ("2006-01-02",
// interpreted in the server zone) and full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
