// Package websearch provides best-effort web context for enrichment.
// Lookups go through the DuckDuckGo Instant Answer API; no key is
// required and every failure degrades to "no snippets" instead of an
// error, because enrichment must work without the web too.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/utils"
)

// Snippet is one piece of web context about a query.
type Snippet struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Client queries the instant-answer endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// New creates a web search client. baseURL normally points at
// https://api.duckduckgo.com and is overridable for tests.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// instantAnswer mirrors the fields we care about in the API response.
type instantAnswer struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is either a result (Text/FirstURL) or a named group of
// nested results (Topics).
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// Snippets returns up to max snippets for the query. It never fails:
// network errors, bad statuses and undecodable bodies all come back
// as an empty result, logged at debug level.
func (c *Client) Snippets(ctx context.Context, query string, max int) []Snippet {
	if max <= 0 {
		return []Snippet{}
	}

	endpoint := fmt.Sprintf("%s/?%s", c.baseURL, url.Values{
		"q":       {query},
		"format":  {"json"},
		"no_html": {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		c.logger.Debug("web search request build failed", logger.Error(err))
		return []Snippet{}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("web search unavailable", logger.Error(err))
		return []Snippet{}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("web search returned non-200",
			logger.Int("status", resp.StatusCode))
		return []Snippet{}
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		c.logger.Debug("web search response undecodable", logger.Error(err))
		return []Snippet{}
	}

	snippets := make([]Snippet, 0, max)
	if answer.AbstractText != "" {
		snippets = append(snippets, Snippet{
			Title:   answer.Heading,
			Snippet: answer.AbstractText,
			URL:     answer.AbstractURL,
		})
	}
	snippets = appendTopics(snippets, answer.RelatedTopics, max)

	if len(snippets) > max {
		snippets = snippets[:max]
	}
	return snippets
}

// appendTopics flattens related topics (including nested groups) into
// snippets until max is reached.
func appendTopics(snippets []Snippet, topics []relatedTopic, max int) []Snippet {
	for _, topic := range topics {
		if len(snippets) >= max {
			break
		}
		if len(topic.Topics) > 0 {
			snippets = appendTopics(snippets, topic.Topics, max)
			continue
		}
		if topic.Text == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Title:   topic.Text,
			Snippet: topic.Text,
			URL:     topic.FirstURL,
		})
	}
	return snippets
}
