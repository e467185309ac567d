package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/service"
)

// ExecuteHandler serves the execution endpoint.
type ExecuteHandler struct {
	execs  *service.ExecService
	logger *slog.Logger
}

// NewExecuteHandler creates an ExecuteHandler.
func NewExecuteHandler(execs *service.ExecService, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		execs:  execs,
		logger: logger.With(slog.String("handler", "execute")),
	}
}

// Execute resolves an opportunity id against the current snapshot and
// records a simulated execution. Live execution requests are rejected.
// POST /api/execute
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req service.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OpportunityID == "" {
		writeError(w, http.StatusBadRequest, "opportunityId is required")
		return
	}

	res, err := h.execs.Execute(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrStaleOpportunity):
		writeError(w, http.StatusNotFound, "opportunity not found or stale; re-scan and retry")
		return
	case errors.Is(err, domain.ErrLiveDisabled):
		writeError(w, http.StatusForbidden, "live execution is disabled; only dry-run is supported")
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "execute failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "execution failed")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
