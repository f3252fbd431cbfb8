package httpapi

import (
	"net/http"
)

const hospitalHeader = "X-Hospital-ID"

// hospitalID reads the tenant from the request. The header is stamped
// by the upstream auth layer; this service trusts it.
func hospitalID(r *http.Request) string {
	return r.Header.Get(hospitalHeader)
}

// requireHospital rejects requests with no tenant context before any
// handler logic runs.
func requireHospital(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hospitalID(r) == "" {
			writeError(w, http.StatusForbidden, "hospital_required")
			return
		}
		next(w, r)
	}
}
