package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
	"github.com/sirupsen/logrus"
)

// MediaHandler handles CRUD operations on catalog items. These are thin
// single-row passthroughs to the store; the query engine never goes
// through this path.
type MediaHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewMediaHandler creates a new media CRUD handler
func NewMediaHandler(db *models.Database, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		db:     db,
		logger: logger,
	}
}

// createPayload is the create request body. Status defaults to wishlist.
type createPayload struct {
	Title       string            `json:"title"`
	Creator     string            `json:"creator"`
	MediaType   string            `json:"media_type"`
	Status      string            `json:"status"`
	ReleaseDate string            `json:"release_date"`
	Genre       string            `json:"genre"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	UserID      string            `json:"user_id"`
}

// updatePayload carries partial updates; nil fields are left untouched
type updatePayload struct {
	Title       *string            `json:"title"`
	Creator     *string            `json:"creator"`
	MediaType   *string            `json:"media_type"`
	Status      *string            `json:"status"`
	ReleaseDate *string            `json:"release_date"`
	Genre       *string            `json:"genre"`
	Description *string            `json:"description"`
	Metadata    *map[string]string `json:"metadata"`
}

// ServeHTTP dispatches /api/media and /api/media/{id}
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/media"), "/")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *MediaHandler) list(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.fetch(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list items")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	filtered := query.Filter(items, filters)
	sorted := query.Sort(filtered, query.DefaultSortSpec())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  sorted,
		"total": len(sorted),
	})
}

// fetch serves a single media type or status constraint from its bolthold
// index; anything else needs the full catalog
func (h *MediaHandler) fetch(filters query.FilterSpec) ([]*models.MediaItem, error) {
	typeOnly := filters.MediaType != "" && len(filters.Statuses) == 0 &&
		filters.Genre == "" && filters.Creator == "" && filters.ReleaseYear == ""
	statusOnly := filters.MediaType == "" && len(filters.Statuses) == 1 &&
		filters.Genre == "" && filters.Creator == "" && filters.ReleaseYear == ""

	switch {
	case typeOnly:
		return h.db.GetItemsByType(filters.MediaType)
	case statusOnly:
		return h.db.GetItemsByStatus(filters.Statuses[0])
	default:
		return h.db.GetAllItems()
	}
}

func (h *MediaHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(payload.Creator) == "" {
		writeError(w, http.StatusBadRequest, "creator is required")
		return
	}

	mediaType, err := models.ParseMediaType(payload.MediaType)
	if err != nil || mediaType == "" {
		writeError(w, http.StatusBadRequest, "a valid media_type is required")
		return
	}

	if payload.Status == "" {
		payload.Status = string(models.StatusWishlist)
	}
	status, err := models.ParseStatus(payload.Status)
	if err != nil || status == "" {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	item := &models.MediaItem{
		Title:       payload.Title,
		Creator:     payload.Creator,
		MediaType:   mediaType,
		Status:      status,
		ReleaseDate: payload.ReleaseDate,
		Genre:       payload.Genre,
		Description: payload.Description,
		Metadata:    payload.Metadata,
		UserID:      payload.UserID,
	}

	if err := h.db.CreateItem(item); err != nil {
		h.logger.WithError(err).Error("Failed to create item")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"id":    item.ID,
		"title": item.Title,
		"type":  item.MediaType,
	}).Info("Media item created")

	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": item})
}

func (h *MediaHandler) get(w http.ResponseWriter, id uint64) {
	item, err := h.db.GetItemByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get item")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": item})
}

func (h *MediaHandler) update(w http.ResponseWriter, r *http.Request, id uint64) {
	item, err := h.db.GetItemByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get item for update")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Title != nil {
		if strings.TrimSpace(*payload.Title) == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		item.Title = *payload.Title
	}
	if payload.Creator != nil {
		if strings.TrimSpace(*payload.Creator) == "" {
			writeError(w, http.StatusBadRequest, "creator cannot be empty")
			return
		}
		item.Creator = *payload.Creator
	}
	if payload.MediaType != nil {
		mediaType, err := models.ParseMediaType(*payload.MediaType)
		if err != nil || mediaType == "" {
			writeError(w, http.StatusBadRequest, "invalid media_type")
			return
		}
		item.MediaType = mediaType
	}
	if payload.Status != nil {
		status, err := models.ParseStatus(*payload.Status)
		if err != nil || status == "" {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		item.Status = status
	}
	if payload.ReleaseDate != nil {
		item.ReleaseDate = *payload.ReleaseDate
	}
	if payload.Genre != nil {
		item.Genre = *payload.Genre
	}
	if payload.Description != nil {
		item.Description = *payload.Description
	}
	if payload.Metadata != nil {
		item.Metadata = *payload.Metadata
	}

	if err := h.db.UpdateItem(item); err != nil {
		h.logger.WithError(err).Error("Failed to update item")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": item})
}

func (h *MediaHandler) delete(w http.ResponseWriter, id uint64) {
	if err := h.db.DeleteItem(id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete item")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.WithField("id", id).Info("Media item deleted")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
