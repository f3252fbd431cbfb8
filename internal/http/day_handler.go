package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/service"

	"go.uber.org/zap"
)

// DayHandler serves the per-patient daily evolution endpoints.
type DayHandler struct {
	evolution service.EvolutionService
	logger    *zap.Logger
}

func NewDayHandler(evolution service.EvolutionService, logger *zap.Logger) *DayHandler {
	return &DayHandler{evolution: evolution, logger: logger}
}

func (h *DayHandler) List(w http.ResponseWriter, r *http.Request, patientID string) {
	days, err := h.evolution.ListDays(r.Context(), hospitalID(r), patientID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayDTOs(days))
}

func (h *DayHandler) Create(w http.ResponseWriter, r *http.Request, patientID string) {
	var req createDayRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return
	}

	day, err := h.evolution.CreateDay(r.Context(), hospitalID(r), patientID, service.CreateDayRequest{
		Date:      date,
		DailyPlan: req.DailyPlan,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDayDTO(day))
}

func (h *DayHandler) Update(w http.ResponseWriter, r *http.Request, patientID, dayID string) {
	var req updateDayRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return
	}
	override := r.URL.Query().Get("override") == "true"

	day, err := h.evolution.UpdateDay(r.Context(), hospitalID(r), patientID, dayID, override, req.toPatch())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayDTO(day))
}

func (h *DayHandler) CopyPlan(w http.ResponseWriter, r *http.Request, patientID, dayID string) {
	plan, err := h.evolution.CopyPreviousPlan(r.Context(), hospitalID(r), patientID, dayID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"plan": plan})
}

func (h *DayHandler) Export(w http.ResponseWriter, r *http.Request, patientID string) {
	days, err := h.evolution.ListDays(r.Context(), hospitalID(r), patientID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	data, err := GenerateDayHistoryExport(days)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("day-history-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(data)
}
