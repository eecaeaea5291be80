package handlers

import (
	"net/http"

	"github.com/amaumene/collectarr/internal/models"
)

// MediaTypesHandler lists the closed media type enumeration for filter UIs
func MediaTypesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.MediaType{
		"media_types": models.AllMediaTypes(),
	})
}

// MediaStatusesHandler lists the closed status enumeration for filter UIs
func MediaStatusesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Status{
		"statuses": models.AllStatuses(),
	})
}
