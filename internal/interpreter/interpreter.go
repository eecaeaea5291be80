package interpreter

import (
	"context"
	"strings"
	"time"

	"github.com/amaumene/collectarr/internal/query"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// Strategy tags record which path produced an interpretation. They are
// informational only; both paths converge on the same InterpretedQuery
// shape and downstream filtering is identical.
const (
	StrategyAI       = "ai"
	StrategyFallback = "fallback"
)

var interpretations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "collectarr_interpreter_total",
	Help: "Query interpretations served, by strategy.",
}, []string{"strategy"})

// Interpretation is the structured output of a generative backend
type Interpretation struct {
	Filters      query.FilterSpec
	Residual     string
	Explanation  string
	Alternatives []string
}

// Backend turns a natural-language phrase into structured filters. It is
// treated as unreliable: any error, timeout or malformed output is
// recovered locally by the deterministic fallback.
type Backend interface {
	Interpret(ctx context.Context, rawQuery string) (*Interpretation, error)
}

// InterpretedQuery is the per-request, never-persisted result of query
// interpretation
type InterpretedQuery struct {
	Filters      query.FilterSpec `json:"filters"`
	Residual     string           `json:"residual,omitempty"`
	Explanation  string           `json:"explanation"`
	Strategy     string           `json:"strategy"`
	Alternatives []string         `json:"alternatives,omitempty"`
}

// Interpreter maps free-form phrases to structured filter parameters. A
// generative backend is consulted first when one is configured; the
// keyword-rule fallback always produces a usable result, so interpretation
// never fails the surrounding search.
type Interpreter struct {
	backend Backend
	timeout time.Duration
	cache   *gocache.Cache
	logger  *logrus.Logger
}

// NewInterpreter creates a new query interpreter. backend may be nil, in
// which case every query takes the deterministic fallback path. cacheTTL
// bounds how long an identical query is served the same interpretation.
func NewInterpreter(backend Backend, timeout, cacheTTL time.Duration, logger *logrus.Logger) *Interpreter {
	return &Interpreter{
		backend: backend,
		timeout: timeout,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  logger,
	}
}

// LooksNatural reports whether a query reads like a natural-language
// sentence worth interpreting: three or more words, or a trailing question
// mark. Single keywords go straight to fuzzy matching.
func LooksNatural(rawQuery string) bool {
	trimmed := strings.TrimSpace(rawQuery)
	return len(strings.Fields(trimmed)) >= 3 || strings.HasSuffix(trimmed, "?")
}

// Interpret converts a query into filter parameters plus residual text.
// It never returns an error: backend unavailability degrades silently to
// rule-based interpretation, and a query matching no rule degrades to pure
// text search with an empty FilterSpec.
func (i *Interpreter) Interpret(ctx context.Context, rawQuery string) *InterpretedQuery {
	key := strings.ToLower(strings.TrimSpace(rawQuery))
	if cached, ok := i.cache.Get(key); ok {
		return cached.(*InterpretedQuery)
	}

	result := i.interpret(ctx, rawQuery)
	i.cache.SetDefault(key, result)
	interpretations.WithLabelValues(result.Strategy).Inc()
	return result
}

func (i *Interpreter) interpret(ctx context.Context, rawQuery string) *InterpretedQuery {
	if i.backend != nil {
		// Single attempt with a hard timeout, no retries: on failure the
		// pipeline proceeds immediately with the fallback.
		attemptCtx, cancel := context.WithTimeout(ctx, i.timeout)
		defer cancel()

		interp, err := i.backend.Interpret(attemptCtx, rawQuery)
		if err == nil && interp != nil {
			i.logger.WithFields(logrus.Fields{
				"query":    rawQuery,
				"residual": interp.Residual,
			}).Debug("Generative interpretation succeeded")

			return &InterpretedQuery{
				Filters:      interp.Filters,
				Residual:     interp.Residual,
				Explanation:  interp.Explanation,
				Strategy:     StrategyAI,
				Alternatives: interp.Alternatives,
			}
		}

		i.logger.WithError(err).WithField("query", rawQuery).
			Warn("Generative interpretation unavailable, using keyword rules")
	}

	return fallbackInterpret(rawQuery)
}
