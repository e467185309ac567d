package handler

import (
	"log/slog"
	"net/http"

	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/service"
)

// OpportunityHandler serves the opportunity discovery endpoints.
type OpportunityHandler struct {
	scans  *service.ScanService
	logger *slog.Logger
}

// NewOpportunityHandler creates an OpportunityHandler.
func NewOpportunityHandler(scans *service.ScanService, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		scans:  scans,
		logger: logger.With(slog.String("handler", "opportunities")),
	}
}

// List runs a fresh scan and returns the ranked opportunities. Optional
// query parameters override the configured threshold and trade size for this
// request only.
// GET /api/opportunities?threshold=0.5&sizeQuote=1000
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	threshold, err := queryFloat(r, "threshold")
	if err != nil {
		writeError(w, http.StatusBadRequest, "threshold must be a number")
		return
	}
	if threshold != nil && *threshold <= 0 {
		writeError(w, http.StatusBadRequest, "threshold must be > 0")
		return
	}

	sizeQuote, err := queryFloat(r, "sizeQuote")
	if err != nil {
		writeError(w, http.StatusBadRequest, "sizeQuote must be a number")
		return
	}
	if sizeQuote != nil && *sizeQuote <= 0 {
		writeError(w, http.StatusBadRequest, "sizeQuote must be > 0")
		return
	}

	opps, err := h.scans.Opportunities(r.Context(), threshold, sizeQuote)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "scan failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}
	if opps == nil {
		opps = []domain.Opportunity{}
	}
	writeJSON(w, http.StatusOK, opps)
}
