package controllers

import (
	"context"
	"strings"

	"github.com/amaumene/collectarr/internal/interpreter"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
	"github.com/amaumene/collectarr/internal/stats"
	"github.com/sirupsen/logrus"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// SearchRequest is one catalog query: free text, explicit structured
// filters, a sort spec and pagination
type SearchRequest struct {
	Query   string
	Filters query.FilterSpec
	Sort    query.SortSpec
	Limit   int
	Offset  int
}

// SearchResponse carries one page of results plus pagination metadata and,
// when natural-language interpretation ran, its informational output
type SearchResponse struct {
	Items          []*models.MediaItem           `json:"items"`
	Total          int                           `json:"total"`
	HasMore        bool                          `json:"has_more"`
	Interpretation *interpreter.InterpretedQuery `json:"interpretation,omitempty"`
}

// SearchController runs the query pipeline: snapshot, interpretation,
// structured filtering, fuzzy matching, sorting, pagination. Every request
// works on its own immutable snapshot, so concurrent searches never
// interfere and no locking is needed.
type SearchController struct {
	db        *models.Database
	interp    *interpreter.Interpreter
	topGenres int
	logger    *logrus.Logger
}

// NewSearchController creates a new search controller
func NewSearchController(db *models.Database, interp *interpreter.Interpreter, topGenres int, logger *logrus.Logger) *SearchController {
	return &SearchController{
		db:        db,
		interp:    interp,
		topGenres: topGenres,
		logger:    logger,
	}
}

// Search evaluates one query request over a fresh catalog snapshot
func (c *SearchController) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	items, err := c.db.GetAllItems()
	if err != nil {
		return nil, err
	}

	filters := req.Filters
	text := req.Query

	// Natural-language interpretation runs only when the text reads like a
	// sentence and no explicit filters were given; a bare keyword goes
	// straight to fuzzy matching.
	var interpretation *interpreter.InterpretedQuery
	if strings.TrimSpace(text) != "" && filters.IsEmpty() && interpreter.LooksNatural(text) {
		interpretation = c.interp.Interpret(ctx, text)
		filters = interpretation.Filters
		text = interpretation.Residual
	}

	filtered := query.Filter(items, filters)
	matched := query.FuzzyMatch(filtered, text)
	sorted := query.Sort(matched, req.Sort)

	total := len(sorted)
	limit, offset := clampPagination(req.Limit, req.Offset)
	page := paginate(sorted, limit, offset)

	c.logger.WithFields(logrus.Fields{
		"query":    req.Query,
		"residual": text,
		"total":    total,
		"returned": len(page),
	}).Debug("Search completed")

	return &SearchResponse{
		Items:          page,
		Total:          total,
		HasMore:        offset+len(page) < total,
		Interpretation: interpretation,
	}, nil
}

// Statistics computes the dashboard readout over a fresh snapshot
func (c *SearchController) Statistics() (*stats.Statistics, error) {
	items, err := c.db.GetAllItems()
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(items, c.topGenres), nil
}

func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(items []*models.MediaItem, limit, offset int) []*models.MediaItem {
	if offset >= len(items) {
		return []*models.MediaItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
