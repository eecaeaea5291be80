package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// stubBackend returns a fixed interpretation or error and counts calls
type stubBackend struct {
	interp *Interpretation
	err    error
	calls  int
}

func (b *stubBackend) Interpret(ctx context.Context, rawQuery string) (*Interpretation, error) {
	b.calls++
	return b.interp, b.err
}

// blockingBackend never returns until its context is cancelled
type blockingBackend struct{}

func (b *blockingBackend) Interpret(ctx context.Context, rawQuery string) (*Interpretation, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestInterpretUsesBackendWhenAvailable(t *testing.T) {
	backend := &stubBackend{
		interp: &Interpretation{
			Filters:  query.FilterSpec{MediaType: models.MediaTypeGame},
			Residual: "hades",
		},
	}
	i := NewInterpreter(backend, time.Second, time.Minute, testLogger())

	result := i.Interpret(context.Background(), "roguelike games like hades")

	if result.Strategy != StrategyAI {
		t.Errorf("Expected ai strategy, got %s", result.Strategy)
	}
	if result.Filters.MediaType != models.MediaTypeGame {
		t.Errorf("Expected game, got %q", result.Filters.MediaType)
	}
	if result.Residual != "hades" {
		t.Errorf("Expected residual hades, got %q", result.Residual)
	}
}

func TestInterpretFallsBackOnBackendError(t *testing.T) {
	backend := &stubBackend{err: errors.New("backend unreachable")}
	i := NewInterpreter(backend, time.Second, time.Minute, testLogger())

	result := i.Interpret(context.Background(), "games I haven't finished")

	if result.Strategy != StrategyFallback {
		t.Errorf("Expected fallback strategy, got %s", result.Strategy)
	}
	if result.Filters.MediaType != models.MediaTypeGame {
		t.Errorf("Expected game from keyword rules, got %q", result.Filters.MediaType)
	}
	if len(result.Filters.Statuses) != 3 {
		t.Errorf("Expected complement status set, got %v", result.Filters.Statuses)
	}
}

func TestInterpretFallsBackOnTimeout(t *testing.T) {
	i := NewInterpreter(&blockingBackend{}, 10*time.Millisecond, time.Minute, testLogger())

	start := time.Now()
	result := i.Interpret(context.Background(), "movies I own")
	elapsed := time.Since(start)

	if result.Strategy != StrategyFallback {
		t.Errorf("Expected fallback strategy after timeout, got %s", result.Strategy)
	}
	if elapsed > time.Second {
		t.Errorf("Timeout not honored, interpretation took %v", elapsed)
	}
	if result.Filters.MediaType != models.MediaTypeMovie {
		t.Errorf("Expected movie from keyword rules, got %q", result.Filters.MediaType)
	}
}

func TestInterpretWithoutBackend(t *testing.T) {
	i := NewInterpreter(nil, time.Second, time.Minute, testLogger())

	result := i.Interpret(context.Background(), "books I am reading")

	if result.Strategy != StrategyFallback {
		t.Errorf("Expected fallback strategy, got %s", result.Strategy)
	}
	if result.Filters.MediaType != models.MediaTypeBook {
		t.Errorf("Expected book, got %q", result.Filters.MediaType)
	}
}

func TestInterpretNeverFails(t *testing.T) {
	// Empty input, no recognizable keywords, and a failing backend must
	// each produce a valid interpretation, not an error or panic
	backend := &stubBackend{err: errors.New("boom")}
	i := NewInterpreter(backend, time.Second, time.Minute, testLogger())

	for _, q := range []string{"", "   ", "qwzx frgl blorp"} {
		result := i.Interpret(context.Background(), q)
		if result == nil {
			t.Fatalf("Query %q: got nil interpretation", q)
		}
		if result.Strategy == "" {
			t.Errorf("Query %q: missing strategy tag", q)
		}
	}
}

func TestInterpretCachesIdenticalQueries(t *testing.T) {
	backend := &stubBackend{
		interp: &Interpretation{Filters: query.FilterSpec{MediaType: models.MediaTypeMusic}},
	}
	i := NewInterpreter(backend, time.Second, time.Minute, testLogger())

	first := i.Interpret(context.Background(), "albums I want")
	second := i.Interpret(context.Background(), "Albums I Want")

	if backend.calls != 1 {
		t.Errorf("Expected 1 backend call for identical queries, got %d", backend.calls)
	}
	if first != second {
		t.Error("Expected the cached interpretation to be reused")
	}
}
