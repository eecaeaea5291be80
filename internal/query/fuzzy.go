package query

import (
	"strings"

	"github.com/amaumene/collectarr/internal/models"
)

// FuzzyMatch returns the items whose composite searchable text contains
// every whitespace-separated term of the query as a substring. The match is
// conjunctive and unranked: predictable recall over relevance scoring, no
// stemming or typo tolerance. An empty or whitespace-only query is the
// identity.
func FuzzyMatch(items []*models.MediaItem, rawQuery string) []*models.MediaItem {
	terms := strings.Fields(strings.ToLower(rawQuery))
	if len(terms) == 0 {
		return items
	}

	matched := make([]*models.MediaItem, 0, len(items))
	for _, item := range items {
		if containsAllTerms(searchableText(item), terms) {
			matched = append(matched, item)
		}
	}
	return matched
}

// searchableText builds the lower-cased composite text an item is matched
// against: title, creator, genre, description and media type
func searchableText(item *models.MediaItem) string {
	parts := []string{
		item.Title,
		item.Creator,
		item.Genre,
		item.Description,
		string(item.MediaType),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func containsAllTerms(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
