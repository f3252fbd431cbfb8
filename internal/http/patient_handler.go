package httpapi

import (
	"net/http"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"
	"github.com/ViniDeiro/daily-icu/internal/service"

	"go.uber.org/zap"
)

// PatientHandler serves the patient registry endpoints.
type PatientHandler struct {
	patients service.PatientService
	logger   *zap.Logger
}

func NewPatientHandler(patients service.PatientService, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{patients: patients, logger: logger}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patients.ListPatients(r.Context(), hospitalID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	out := make([]patientDTO, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request, patientID string) {
	detail, err := h.patients.GetPatient(r.Context(), hospitalID(r), patientID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, patientDetailDTO{
		patientDTO: toPatientDTO(detail.Patient),
		Baseline:   toBaselineDTO(detail.Baseline),
	})
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPatientRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return
	}

	var birthDate time.Time
	if req.BirthDate != "" {
		var err error
		birthDate, err = parseDate(req.BirthDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_payload")
			return
		}
	}

	created, err := h.patients.CreatePatient(r.Context(), &domain.Patient{
		HospitalID:        hospitalID(r),
		Name:              req.Name,
		RecordNumber:      req.RecordNumber,
		Bed:               req.Bed,
		Ward:              req.Ward,
		BirthDate:         birthDate,
		HospitalAdmission: req.HospitalAdmission,
		ICUAdmission:      req.ICUAdmission,
		ExpectedDischarge: req.ExpectedDischarge,
		Allergies:         req.Allergies,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPatientDTO(created))
}
