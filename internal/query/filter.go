package query

import (
	"strings"

	"github.com/amaumene/collectarr/internal/models"
)

// FilterSpec is a set of independently-optional predicates applied to the
// catalog before free-text matching. A zero-value field means "no
// constraint". Statuses holds an inclusion set so a negated phrase like
// "haven't finished" can express the complement of completed as three OR'd
// statuses.
type FilterSpec struct {
	MediaType   models.MediaType `json:"media_type,omitempty"`
	Statuses    []models.Status  `json:"statuses,omitempty"`
	Genre       string           `json:"genre,omitempty"`
	Creator     string           `json:"creator,omitempty"`
	ReleaseYear string           `json:"release_year,omitempty"`
}

// IsEmpty reports whether the spec constrains anything
func (f FilterSpec) IsEmpty() bool {
	return f.MediaType == "" &&
		len(f.Statuses) == 0 &&
		f.Genre == "" &&
		f.Creator == "" &&
		f.ReleaseYear == ""
}

// Filter returns the subsequence of items where every present predicate
// matches. Input order is preserved. An empty spec is the identity.
func Filter(items []*models.MediaItem, spec FilterSpec) []*models.MediaItem {
	if spec.IsEmpty() {
		return items
	}

	filtered := make([]*models.MediaItem, 0, len(items))
	for _, item := range items {
		if matches(item, spec) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matches(item *models.MediaItem, spec FilterSpec) bool {
	if spec.MediaType != "" && item.MediaType != spec.MediaType {
		return false
	}
	if len(spec.Statuses) > 0 && !statusIn(item.Status, spec.Statuses) {
		return false
	}
	// Substring predicates are case-insensitive. An item missing an
	// optional field simply fails the predicate; that is not an error.
	if spec.Genre != "" && !containsFold(item.Genre, spec.Genre) {
		return false
	}
	if spec.Creator != "" && !containsFold(item.Creator, spec.Creator) {
		return false
	}
	// ReleaseYear matches anywhere in the free-form release date, so a
	// query for "2023" also matches "2023-05-15".
	if spec.ReleaseYear != "" && !containsFold(item.ReleaseDate, spec.ReleaseYear) {
		return false
	}
	return true
}

func statusIn(status models.Status, set []models.Status) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
