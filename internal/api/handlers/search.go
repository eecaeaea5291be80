package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amaumene/collectarr/internal/controllers"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles catalog search requests
type SearchHandler struct {
	searchCtrl *controllers.SearchController
	logger     *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchCtrl *controllers.SearchController, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchCtrl: searchCtrl,
		logger:     logger,
	}
}

// ServeHTTP handles GET /api/search
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := r.URL.Query()

	// Enum values are validated here at the boundary; the core assumes
	// validated enums.
	filters, err := parseFilterSpec(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := controllers.SearchRequest{
		Query:   params.Get("q"),
		Filters: filters,
		// Malformed sort input falls back to the default instead of
		// failing; a bad sort never blocks a search.
		Sort: query.SortSpec{
			Field:     query.ParseSortField(params.Get("sort")),
			Direction: query.ParseSortDirection(params.Get("order")),
		},
		Limit:  intParam(params, "limit"),
		Offset: intParam(params, "offset"),
	}

	resp, err := h.searchCtrl.Search(r.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Search failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseFilterSpec validates structured filter parameters against the closed
// enums. "all" and absence both mean "no constraint".
func parseFilterSpec(params url.Values) (query.FilterSpec, error) {
	var spec query.FilterSpec

	mediaType, err := models.ParseMediaType(params.Get("media_type"))
	if err != nil {
		return spec, fmt.Errorf("media_type: %w", err)
	}
	spec.MediaType = mediaType

	status, err := models.ParseStatus(params.Get("status"))
	if err != nil {
		return spec, fmt.Errorf("status: %w", err)
	}
	if status != "" {
		spec.Statuses = []models.Status{status}
	}

	spec.Genre = params.Get("genre")
	spec.Creator = params.Get("creator")
	spec.ReleaseYear = params.Get("release_year")

	return spec, nil
}

// intParam parses a numeric parameter, treating absence or garbage as zero
// so the controller applies its defaults
func intParam(params url.Values, name string) int {
	v, err := strconv.Atoi(params.Get(name))
	if err != nil {
		return 0
	}
	return v
}
