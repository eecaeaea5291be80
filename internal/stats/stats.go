package stats

import (
	"sort"

	"github.com/amaumene/collectarr/internal/models"
)

// GenreCount is one entry in the top-genres ranking
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Statistics is a snapshot-derived readout of the catalog. Only observed
// type/status values appear as keys; zero-count enum members are omitted.
type Statistics struct {
	Total     int            `json:"total"`
	ByType    map[string]int `json:"by_type"`
	ByStatus  map[string]int `json:"by_status"`
	TopGenres []GenreCount   `json:"top_genres"`
}

// Aggregate computes catalog statistics over a fresh snapshot. It is a pure
// function of its inputs and holds no incremental counters, so any CRUD
// mutation is reflected on the next call.
func Aggregate(items []*models.MediaItem, topGenres int) *Statistics {
	s := &Statistics{
		Total:    len(items),
		ByType:   make(map[string]int),
		ByStatus: make(map[string]int),
	}

	genreCounts := make(map[string]int)
	genreOrder := make([]string, 0)

	for _, item := range items {
		s.ByType[string(item.MediaType)]++
		s.ByStatus[string(item.Status)]++

		if item.Genre == "" {
			continue
		}
		if _, seen := genreCounts[item.Genre]; !seen {
			genreOrder = append(genreOrder, item.Genre)
		}
		genreCounts[item.Genre]++
	}

	// Rank genres by descending count. genreOrder is in first-seen order
	// and the sort is stable, so ties keep first-seen order.
	sort.SliceStable(genreOrder, func(i, j int) bool {
		return genreCounts[genreOrder[i]] > genreCounts[genreOrder[j]]
	})

	if topGenres > len(genreOrder) {
		topGenres = len(genreOrder)
	}
	for _, g := range genreOrder[:topGenres] {
		s.TopGenres = append(s.TopGenres, GenreCount{Genre: g, Count: genreCounts[g]})
	}

	return s
}
