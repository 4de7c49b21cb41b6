package web

import "net/http"

// handlePerf exposes aggregated request timings. Admin only.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot())
}
