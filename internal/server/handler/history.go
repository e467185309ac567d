package handler

import (
	"errors"
	"net/http"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/service"
)

// HistoryHandler serves the execution history endpoints.
type HistoryHandler struct {
	execs *service.ExecService
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(execs *service.ExecService) *HistoryHandler {
	return &HistoryHandler{execs: execs}
}

// List returns recorded executions, newest first.
// GET /api/trades?limit=50
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	recs := h.execs.History(r.Context(), limit)
	if recs == nil {
		recs = []domain.ExecutionRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// Get returns one recorded execution by id.
// GET /api/trades/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.execs.Trade(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "trade not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "trade lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
