package handler

import "net/http"

// counterResponse carries the headcount display value. Sentinel values
// ("N/A", "Error") pass through untouched; the page shows them literally.
type counterResponse struct {
	Counter string `json:"counter"`
}

// GetCounter handles GET /api/counter: the cached headcount for the
// upcoming occasion. Never fails; degraded reads degrade the value only.
func (s *Server) GetCounter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, counterResponse{Counter: s.counter.ReadCounter(r.Context())})
}
