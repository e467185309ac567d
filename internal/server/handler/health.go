package handler

import (
	"net/http"
	"time"

	"github.com/chainarb/arbscan/internal/snapshot"
)

// HealthHandler serves the health-check endpoint.
type HealthHandler struct {
	snap   *snapshot.Store
	venues func() []string
}

// NewHealthHandler creates a HealthHandler. venues reports the registered
// venue names for the status payload.
func NewHealthHandler(snap *snapshot.Store, venues func() []string) *HealthHandler {
	return &HealthHandler{snap: snap, venues: venues}
}

// HealthCheck responds with the server status, the registered venues, and
// the age of the current snapshot.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"venues":    h.venues(),
	}
	if updated := h.snap.UpdatedAt(); !updated.IsZero() {
		body["lastScan"] = updated.Format(time.RFC3339)
		body["opportunities"] = h.snap.Len()
	}
	writeJSON(w, http.StatusOK, body)
}
