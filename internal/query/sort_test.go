package query

import (
	"testing"
	"time"

	"github.com/amaumene/collectarr/internal/models"
)

func TestSortByTitleAscendingDefault(t *testing.T) {
	sorted := Sort(testCatalog(), DefaultSortSpec())

	want := []string{"Abbey Road", "Dune", "Hades", "Inception"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Errorf("Position %d: expected %s, got %s", i, title, sorted[i].Title)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := testCatalog()
	first := items[0]

	Sort(items, SortSpec{Field: SortByTitle, Direction: SortDescending})

	if items[0] != first {
		t.Error("Sort mutated its input slice")
	}
}

func TestSortStability(t *testing.T) {
	// Two items with identical genres must keep their input order in both
	// directions
	items := []*models.MediaItem{
		{ID: 1, Title: "First", Genre: "Rock"},
		{ID: 2, Title: "Second", Genre: "Rock"},
		{ID: 3, Title: "Third", Genre: "Ambient"},
	}

	asc := Sort(items, SortSpec{Field: SortByGenre, Direction: SortAscending})
	if asc[1].ID != 1 || asc[2].ID != 2 {
		t.Errorf("Ascending: tied items reordered: got %d, %d", asc[1].ID, asc[2].ID)
	}

	desc := Sort(items, SortSpec{Field: SortByGenre, Direction: SortDescending})
	if desc[0].ID != 1 || desc[1].ID != 2 {
		t.Errorf("Descending: tied items reordered: got %d, %d", desc[0].ID, desc[1].ID)
	}
}

func TestSortByCreatedAtUsesInstant(t *testing.T) {
	// Chronological order across a year boundary, regardless of how the
	// timestamps would compare as display strings
	older := time.Date(2023, 9, 30, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	items := []*models.MediaItem{
		{ID: 1, Title: "Newer", CreatedAt: newer},
		{ID: 2, Title: "Older", CreatedAt: older},
	}

	sorted := Sort(items, SortSpec{Field: SortByCreatedAt, Direction: SortAscending})
	if sorted[0].ID != 2 || sorted[1].ID != 1 {
		t.Errorf("Expected chronological order Older, Newer; got %s, %s", sorted[0].Title, sorted[1].Title)
	}
}

func TestSortMissingGenreClustersAtEdges(t *testing.T) {
	items := []*models.MediaItem{
		{ID: 1, Title: "Tagged", Genre: "Jazz"},
		{ID: 2, Title: "Untagged"},
	}

	asc := Sort(items, SortSpec{Field: SortByGenre, Direction: SortAscending})
	if asc[0].ID != 2 {
		t.Errorf("Ascending: untagged item should sort first, got %s", asc[0].Title)
	}

	desc := Sort(items, SortSpec{Field: SortByGenre, Direction: SortDescending})
	if desc[len(desc)-1].ID != 2 {
		t.Errorf("Descending: untagged item should sort last, got %s", desc[len(desc)-1].Title)
	}
}

func TestSortCaseInsensitive(t *testing.T) {
	items := []*models.MediaItem{
		{ID: 1, Title: "zebra"},
		{ID: 2, Title: "Apple"},
	}

	sorted := Sort(items, DefaultSortSpec())
	if sorted[0].ID != 2 {
		t.Errorf("Expected Apple before zebra, got %s first", sorted[0].Title)
	}
}

func TestParseSortFieldFallsBackToDefault(t *testing.T) {
	cases := map[string]SortField{
		"title":        SortByTitle,
		"creator":      SortByCreator,
		"release_date": SortByReleaseDate,
		"created_at":   SortByCreatedAt,
		"genre":        SortByGenre,
		"":             SortByTitle,
		"bogus":        SortByTitle,
	}

	for raw, want := range cases {
		if got := ParseSortField(raw); got != want {
			t.Errorf("ParseSortField(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseSortDirectionFallsBackToAscending(t *testing.T) {
	cases := map[string]SortDirection{
		"asc":        SortAscending,
		"desc":       SortDescending,
		"ascending":  SortAscending,
		"descending": SortDescending,
		"":           SortAscending,
		"sideways":   SortAscending,
	}

	for raw, want := range cases {
		if got := ParseSortDirection(raw); got != want {
			t.Errorf("ParseSortDirection(%q) = %q, want %q", raw, got, want)
		}
	}
}
