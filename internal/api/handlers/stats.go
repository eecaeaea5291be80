package handlers

import (
	"net/http"

	"github.com/amaumene/collectarr/internal/controllers"
	"github.com/sirupsen/logrus"
)

// StatsHandler handles catalog statistics requests
type StatsHandler struct {
	searchCtrl *controllers.SearchController
	logger     *logrus.Logger
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(searchCtrl *controllers.SearchController, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		searchCtrl: searchCtrl,
		logger:     logger,
	}
}

// ServeHTTP handles GET /api/stats. Statistics are recomputed from a fresh
// snapshot on every call.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	statistics, err := h.searchCtrl.Statistics()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute statistics")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, statistics)
}
