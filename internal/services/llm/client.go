package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amaumene/collectarr/internal/config"
	"github.com/amaumene/collectarr/internal/interpreter"
	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/query"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are a smart search assistant for a personal media collection. " +
	"You respond only with a JSON object, no prose and no markdown."

const promptTemplate = `Interpret this natural language query against a media collection and suggest search parameters.

User query: %q

Available media types: movie, music, game, book, tv_show
Available statuses: owned, wishlist, currently_in_use, completed

Respond with JSON of this exact shape:
{
  "interpreted_query": "residual free-text search terms, may be empty",
  "suggested_filters": {
    "media_type": "type or null",
    "status": "status or null",
    "genre": "genre or null",
    "creator": "creator or null",
    "release_year": "year or null"
  },
  "explanation": "how you interpreted the query",
  "alternative_queries": ["alt1", "alt2"]
}

Examples:
- "sci-fi movies I own" -> media_type movie, status owned, genre sci-fi
- "games I haven't finished" -> media_type game, status not completed
- "new music to listen to" -> media_type music, status wishlist`

// interpretationPayload is the wire shape the backend is instructed to emit
type interpretationPayload struct {
	InterpretedQuery string `json:"interpreted_query"`
	SuggestedFilters struct {
		MediaType   string `json:"media_type"`
		Status      string `json:"status"`
		Genre       string `json:"genre"`
		Creator     string `json:"creator"`
		ReleaseYear string `json:"release_year"`
	} `json:"suggested_filters"`
	Explanation        string   `json:"explanation"`
	AlternativeQueries []string `json:"alternative_queries"`
}

// Client talks to an OpenAI-compatible chat completion API. It implements
// interpreter.Backend; every returned error is recovered by the
// interpreter's fallback, never surfaced to the search caller.
type Client struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewClient creates a generative backend client. A custom base URL points
// it at any OpenAI-compatible server.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.AIModel,
		logger: logger,
	}
}

// Interpret submits the query for generative interpretation. The caller
// owns the timeout via ctx; a single attempt is made.
func (c *Client) Interpret(ctx context.Context, rawQuery string) (*interpreter.Interpretation, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, rawQuery)},
		},
		MaxTokens:   400,
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("backend returned no choices")
	}

	interp, err := parseInterpretation(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"query":    rawQuery,
		"residual": interp.Residual,
	}).Debug("Parsed generative interpretation")

	return interp, nil
}

// parseInterpretation decodes the backend's JSON, tolerating markdown
// fences and surrounding prose. Values outside the closed enums are dropped
// field-wise; an undecodable payload is an error.
func parseInterpretation(content string) (*interpreter.Interpretation, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload interpretationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("malformed interpretation payload: %w", err)
	}

	spec := query.FilterSpec{
		Genre:       cleanField(payload.SuggestedFilters.Genre),
		Creator:     cleanField(payload.SuggestedFilters.Creator),
		ReleaseYear: cleanField(payload.SuggestedFilters.ReleaseYear),
	}

	if mt, err := models.ParseMediaType(cleanField(payload.SuggestedFilters.MediaType)); err == nil {
		spec.MediaType = mt
	}
	if st, err := models.ParseStatus(cleanField(payload.SuggestedFilters.Status)); err == nil && st != "" {
		spec.Statuses = []models.Status{st}
	}

	return &interpreter.Interpretation{
		Filters:      spec,
		Residual:     strings.TrimSpace(payload.InterpretedQuery),
		Explanation:  payload.Explanation,
		Alternatives: payload.AlternativeQueries,
	}, nil
}

// extractJSON pulls the outermost JSON object out of a completion that may
// be wrapped in code fences or prose
func extractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in backend response")
	}
	return content[start : end+1], nil
}

// cleanField normalizes the "null"-ish strings models emit for absent fields
func cleanField(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "null", "none", "n/a":
		return ""
	}
	return v
}
