package interpreter

import (
	"strings"
	"testing"

	"github.com/amaumene/collectarr/internal/models"
)

func TestFallbackMediaAndStatusCues(t *testing.T) {
	result := fallbackInterpret("sci-fi movies I own")

	if result.Strategy != StrategyFallback {
		t.Errorf("Expected fallback strategy, got %s", result.Strategy)
	}
	if result.Filters.MediaType != models.MediaTypeMovie {
		t.Errorf("Expected movie, got %q", result.Filters.MediaType)
	}
	if len(result.Filters.Statuses) != 1 || result.Filters.Statuses[0] != models.StatusOwned {
		t.Errorf("Expected owned, got %v", result.Filters.Statuses)
	}
	if result.Residual != "sci-fi" {
		t.Errorf("Expected residual \"sci-fi\", got %q", result.Residual)
	}
}

func TestFallbackNegatedCompletion(t *testing.T) {
	result := fallbackInterpret("games I haven't finished")

	if result.Filters.MediaType != models.MediaTypeGame {
		t.Errorf("Expected game, got %q", result.Filters.MediaType)
	}

	want := map[models.Status]bool{
		models.StatusWishlist:       true,
		models.StatusOwned:          true,
		models.StatusCurrentlyInUse: true,
	}
	if len(result.Filters.Statuses) != len(want) {
		t.Fatalf("Expected complement set of 3 statuses, got %v", result.Filters.Statuses)
	}
	for _, s := range result.Filters.Statuses {
		if !want[s] {
			t.Errorf("Unexpected status %q in complement set", s)
		}
	}
	if result.Residual != "" {
		t.Errorf("Expected empty residual, got %q", result.Residual)
	}
}

func TestFallbackNegationVariants(t *testing.T) {
	for _, q := range []string{
		"books I haven't completed",
		"books not finished",
		"books never done",
		"unfinished books",
	} {
		result := fallbackInterpret(q)
		if len(result.Filters.Statuses) != 3 {
			t.Errorf("Query %q: expected complement set, got %v", q, result.Filters.Statuses)
		}
		if result.Filters.MediaType != models.MediaTypeBook {
			t.Errorf("Query %q: expected book, got %q", q, result.Filters.MediaType)
		}
	}
}

func TestFallbackPhraseCues(t *testing.T) {
	result := fallbackInterpret("tv shows I am watching")

	if result.Filters.MediaType != models.MediaTypeTVShow {
		t.Errorf("Expected tv_show, got %q", result.Filters.MediaType)
	}
	if len(result.Filters.Statuses) != 1 || result.Filters.Statuses[0] != models.StatusCurrentlyInUse {
		t.Errorf("Expected currently_in_use, got %v", result.Filters.Statuses)
	}
	if result.Residual != "" {
		t.Errorf("Expected empty residual, got %q", result.Residual)
	}
}

func TestFallbackStatusCueTable(t *testing.T) {
	cases := map[string]models.Status{
		"music on my wishlist": models.StatusWishlist,
		"albums I want":        models.StatusWishlist,
		"games I am playing":   models.StatusCurrentlyInUse,
		"books I am reading":   models.StatusCurrentlyInUse,
		"movies I own":         models.StatusOwned,
		"games I completed":    models.StatusCompleted,
		"movies I finished":    models.StatusCompleted,
		"books that are done":  models.StatusCompleted,
		"songs I am listening": models.StatusCurrentlyInUse,
		"shows I am currently": models.StatusCurrentlyInUse,
	}

	for q, want := range cases {
		result := fallbackInterpret(q)
		if len(result.Filters.Statuses) != 1 || result.Filters.Statuses[0] != want {
			t.Errorf("Query %q: expected status %q, got %v", q, want, result.Filters.Statuses)
		}
	}
}

func TestFallbackNoCuesIsPlainTextSearch(t *testing.T) {
	result := fallbackInterpret("zelda breath wild")

	if !result.Filters.IsEmpty() {
		t.Errorf("Expected empty filter spec, got %+v", result.Filters)
	}
	if result.Residual != "zelda breath wild" {
		t.Errorf("Expected full residual, got %q", result.Residual)
	}
	if result.Explanation == "" {
		t.Error("Expected an explanation")
	}
}

func TestFallbackEmptyQuery(t *testing.T) {
	result := fallbackInterpret("")

	if !result.Filters.IsEmpty() {
		t.Errorf("Expected empty filter spec, got %+v", result.Filters)
	}
	if result.Residual != "" {
		t.Errorf("Expected empty residual, got %q", result.Residual)
	}
	if result.Strategy != StrategyFallback {
		t.Errorf("Expected fallback strategy, got %s", result.Strategy)
	}
}

func TestFallbackStopwordsDropped(t *testing.T) {
	// Function words must not leak into the residual: a lone "i" would
	// substring-match nearly every item
	result := fallbackInterpret("movies with the word dark in them")

	if result.Filters.MediaType != models.MediaTypeMovie {
		t.Errorf("Expected movie, got %q", result.Filters.MediaType)
	}
	padded := " " + result.Residual + " "
	for _, banned := range []string{" i ", " the ", " with ", " in "} {
		if strings.Contains(padded, banned) {
			t.Errorf("Residual %q contains stopword %q", result.Residual, banned)
		}
	}
	if !strings.Contains(result.Residual, "dark") {
		t.Errorf("Expected \"dark\" in residual, got %q", result.Residual)
	}
}

func TestFallbackNearMissSuggestions(t *testing.T) {
	result := fallbackInterpret("moviez I own")

	if len(result.Alternatives) == 0 {
		t.Fatal("Expected a near-miss suggestion for \"moviez\"")
	}
	if result.Alternatives[0] != "movie i own" {
		t.Errorf("Expected corrected query \"movie i own\", got %q", result.Alternatives[0])
	}
}

func TestLooksNatural(t *testing.T) {
	cases := map[string]bool{
		"games I haven't finished": true,
		"what should I watch?":     true,
		"hades?":                   true,
		"inception":                false,
		"dark knight":              false,
		"":                         false,
		"   ":                      false,
	}

	for q, want := range cases {
		if got := LooksNatural(q); got != want {
			t.Errorf("LooksNatural(%q) = %v, want %v", q, got, want)
		}
	}
}
