package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chainarb/arbscan/internal/service"
)

// SimulateHandler serves the trade-injection endpoint used to exercise the
// trades feed without a live opportunity.
type SimulateHandler struct {
	execs *service.ExecService
}

// NewSimulateHandler creates a SimulateHandler.
func NewSimulateHandler(execs *service.ExecService) *SimulateHandler {
	return &SimulateHandler{execs: execs}
}

// Simulate injects a fabricated execution record. The body is optional; any
// provided fields override the defaults.
// POST /api/simulate
func (h *SimulateHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req service.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec := h.execs.Simulate(r.Context(), req)
	writeJSON(w, http.StatusOK, rec)
}
