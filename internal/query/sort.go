package query

import (
	"sort"
	"strings"

	"github.com/amaumene/collectarr/internal/models"
)

// SortField identifies the field a result set is ordered by
type SortField string

const (
	SortByTitle       SortField = "title"
	SortByCreator     SortField = "creator"
	SortByReleaseDate SortField = "release_date"
	SortByCreatedAt   SortField = "created_at"
	SortByGenre       SortField = "genre"
)

// SortDirection identifies ascending or descending order
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortSpec describes the requested ordering of a result set
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortSpec is title ascending
func DefaultSortSpec() SortSpec {
	return SortSpec{Field: SortByTitle, Direction: SortAscending}
}

// ParseSortField maps a raw string to a sort field. Malformed input falls
// back to the default rather than failing: a bad sort never blocks a search.
func ParseSortField(raw string) SortField {
	switch SortField(raw) {
	case SortByTitle, SortByCreator, SortByReleaseDate, SortByCreatedAt, SortByGenre:
		return SortField(raw)
	}
	return SortByTitle
}

// ParseSortDirection maps a raw string to a direction, defaulting to
// ascending on anything unrecognized
func ParseSortDirection(raw string) SortDirection {
	switch SortDirection(raw) {
	case SortAscending, SortDescending:
		return SortDirection(raw)
	case "ascending":
		return SortAscending
	case "descending":
		return SortDescending
	}
	return SortAscending
}

// Sort returns a new slice ordered by the spec. The sort is stable: items
// with equal keys keep their input order, so repeated identical requests
// paginate deterministically. String fields compare case-insensitively and
// absent optional fields sort as the empty string. created_at compares by
// instant, not lexically.
func Sort(items []*models.MediaItem, spec SortSpec) []*models.MediaItem {
	sorted := make([]*models.MediaItem, len(items))
	copy(sorted, items)

	less := lessFunc(spec.Field)
	if spec.Direction == SortDescending {
		asc := less
		less = func(a, b *models.MediaItem) bool { return asc(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}

func lessFunc(field SortField) func(a, b *models.MediaItem) bool {
	switch field {
	case SortByCreator:
		return func(a, b *models.MediaItem) bool {
			return strings.ToLower(a.Creator) < strings.ToLower(b.Creator)
		}
	case SortByReleaseDate:
		return func(a, b *models.MediaItem) bool {
			return strings.ToLower(a.ReleaseDate) < strings.ToLower(b.ReleaseDate)
		}
	case SortByCreatedAt:
		return func(a, b *models.MediaItem) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortByGenre:
		return func(a, b *models.MediaItem) bool {
			return strings.ToLower(a.Genre) < strings.ToLower(b.Genre)
		}
	case SortByTitle:
		fallthrough
	default:
		return func(a, b *models.MediaItem) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
}
