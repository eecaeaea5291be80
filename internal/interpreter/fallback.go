package interpreter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
)

// mediaCuePhrases are multi-word media type cues, checked before the token
// scan so both words are consumed
var mediaCuePhrases = []struct {
	phrase    string
	mediaType models.MediaType
}{
	{"tv shows", models.MediaTypeTVShow},
	{"tv show", models.MediaTypeTVShow},
	{"video games", models.MediaTypeGame},
	{"video game", models.MediaTypeGame},
}

var mediaCueWords = map[string]models.MediaType{
	"movie":  models.MediaTypeMovie,
	"movies": models.MediaTypeMovie,
	"film":   models.MediaTypeMovie,
	"films":  models.MediaTypeMovie,
	"game":   models.MediaTypeGame,
	"games":  models.MediaTypeGame,
	"book":   models.MediaTypeBook,
	"books":  models.MediaTypeBook,
	"novel":  models.MediaTypeBook,
	"novels": models.MediaTypeBook,
	"show":   models.MediaTypeTVShow,
	"shows":  models.MediaTypeTVShow,
	"series": models.MediaTypeTVShow,
	"tv":     models.MediaTypeTVShow,
	"album":  models.MediaTypeMusic,
	"albums": models.MediaTypeMusic,
	"music":  models.MediaTypeMusic,
	"song":   models.MediaTypeMusic,
	"songs":  models.MediaTypeMusic,
}

var statusCueWords = map[string]models.Status{
	"owned":     models.StatusOwned,
	"own":       models.StatusOwned,
	"wishlist":  models.StatusWishlist,
	"want":      models.StatusWishlist,
	"playing":   models.StatusCurrentlyInUse,
	"watching":  models.StatusCurrentlyInUse,
	"reading":   models.StatusCurrentlyInUse,
	"listening": models.StatusCurrentlyInUse,
	"currently": models.StatusCurrentlyInUse,
	"using":     models.StatusCurrentlyInUse,
	"finished":  models.StatusCompleted,
	"completed": models.StatusCompleted,
	"done":      models.StatusCompleted,
}

// negatedCompletionPhrases map phrases like "haven't finished" to the
// complement of completed. The exact keyword list is a starting point
// confirmed against the product's example queries, not an exhaustive
// grammar.
var negatedCompletionPhrases = buildNegatedPhrases()

func buildNegatedPhrases() []string {
	negators := []string{"haven't", "havent", "hasn't", "hasnt", "not", "never"}
	completions := []string{"finished", "completed", "done"}

	phrases := make([]string, 0, len(negators)*len(completions)+1)
	for _, n := range negators {
		for _, c := range completions {
			phrases = append(phrases, n+" "+c)
		}
	}
	return append(phrases, "unfinished")
}

// notCompletedSet is the complement of completed, expressed as OR'd statuses
func notCompletedSet() []models.Status {
	return []models.Status{models.StatusWishlist, models.StatusOwned, models.StatusCurrentlyInUse}
}

// stopwords are function words dropped from the residual text. The residual
// feeds conjunctive substring matching, where a stray "i" or "a" would match
// nearly every item.
var stopwords = map[string]bool{
	"i": true, "me": true, "my": true, "im": true, "i'm": true, "ive": true, "i've": true,
	"a": true, "an": true, "the": true, "to": true, "of": true, "in": true, "on": true,
	"for": true, "from": true, "with": true, "that": true, "this": true, "these": true,
	"some": true, "any": true, "all": true, "and": true, "or": true, "is": true,
	"are": true, "do": true, "does": true, "did": true, "have": true, "has": true,
	"what": true, "which": true, "where": true, "am": true, "was": true, "were": true,
	"haven't": true, "havent": true, "hasn't": true, "hasnt": true, "not": true, "never": true,
}

// fallbackInterpret is the deterministic keyword-rule interpreter. It is a
// pure synchronous function so the failure handling of the generative path
// stays unit-testable without any network involvement.
func fallbackInterpret(rawQuery string) *InterpretedQuery {
	q := strings.ToLower(strings.TrimSpace(rawQuery))

	var spec query.FilterSpec
	var clauses []string

	// Negated completion phrases first, so their words never reach the
	// token scan as positive completion cues.
	for _, phrase := range negatedCompletionPhrases {
		if strings.Contains(q, phrase) {
			spec.Statuses = notCompletedSet()
			q = strings.ReplaceAll(q, phrase, " ")
			clauses = append(clauses, fmt.Sprintf("%q means not completed (wishlist, owned or currently in use)", phrase))
			break
		}
	}

	for _, c := range mediaCuePhrases {
		if spec.MediaType == "" && strings.Contains(q, c.phrase) {
			spec.MediaType = c.mediaType
			q = strings.ReplaceAll(q, c.phrase, " ")
			clauses = append(clauses, fmt.Sprintf("%q means %s", c.phrase, c.mediaType.Label()))
		}
	}

	var residual []string
	for _, token := range strings.Fields(q) {
		word := strings.Trim(token, ".,!?;:\"()[]")
		if word == "" {
			continue
		}

		if spec.MediaType == "" {
			if mt, ok := mediaCueWords[word]; ok {
				spec.MediaType = mt
				clauses = append(clauses, fmt.Sprintf("%q means %s", word, mt.Label()))
				continue
			}
		}
		if len(spec.Statuses) == 0 {
			if st, ok := statusCueWords[word]; ok {
				spec.Statuses = []models.Status{st}
				clauses = append(clauses, fmt.Sprintf("%q means %s", word, st.Label()))
				continue
			}
		}
		if stopwords[word] {
			continue
		}
		residual = append(residual, word)
	}

	result := &InterpretedQuery{
		Filters:      spec,
		Residual:     strings.Join(residual, " "),
		Strategy:     StrategyFallback,
		Alternatives: suggestAlternatives(rawQuery, residual),
	}

	if len(clauses) == 0 {
		result.Explanation = "No structured cues recognized; treating the query as plain text search"
	} else {
		result.Explanation = "Keyword interpretation: " + strings.Join(clauses, "; ")
	}

	return result
}

// suggestAlternatives proposes corrected queries when a residual word is a
// near miss (edit distance <= 2) for a known cue word
func suggestAlternatives(rawQuery string, residual []string) []string {
	lowered := strings.ToLower(rawQuery)

	var alternatives []string
	for _, word := range residual {
		if len(word) < 4 {
			continue
		}
		if cue, ok := closestCue(word); ok {
			alternatives = append(alternatives, strings.Replace(lowered, word, cue, 1))
		}
	}
	return alternatives
}

// allCueWords is a sorted list so near-miss resolution is deterministic
var allCueWords = buildCueList()

func buildCueList() []string {
	words := make([]string, 0, len(mediaCueWords)+len(statusCueWords))
	for cue := range mediaCueWords {
		words = append(words, cue)
	}
	for cue := range statusCueWords {
		words = append(words, cue)
	}
	sort.Strings(words)
	return words
}

func closestCue(word string) (string, bool) {
	best := ""
	bestDistance := 3 // accept distance 1 or 2 only

	for _, cue := range allCueWords {
		if d := levenshtein.ComputeDistance(word, cue); d > 0 && d < bestDistance {
			best, bestDistance = cue, d
		}
	}

	return best, best != ""
}
