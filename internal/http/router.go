package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux; the route surface is
// small enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterPatientRoutes wires the patient and day endpoints. All of
// them require the hospital header.
func (r *Router) RegisterPatientRoutes(patients *PatientHandler, days *DayHandler) {
	r.mux.HandleFunc("/api/v1/patients", requireHospital(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			patients.List(w, req)
		case http.MethodPost:
			patients.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.mux.HandleFunc("/api/v1/patients/", requireHospital(func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/api/v1/patients/")
		parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")

		switch {
		case len(parts) == 1 && parts[0] != "":
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			patients.Get(w, req, parts[0])

		case len(parts) == 2 && parts[1] == "days":
			switch req.Method {
			case http.MethodGet:
				days.List(w, req, parts[0])
			case http.MethodPost:
				days.Create(w, req, parts[0])
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}

		case len(parts) == 3 && parts[1] == "days" && parts[2] == "export":
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			days.Export(w, req, parts[0])

		case len(parts) == 3 && parts[1] == "days":
			if req.Method != http.MethodPut {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			days.Update(w, req, parts[0], parts[2])

		case len(parts) == 4 && parts[1] == "days" && parts[3] == "copy-plan":
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			days.CopyPlan(w, req, parts[0], parts[2])

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	r.mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
