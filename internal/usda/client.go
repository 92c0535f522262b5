package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"macromate/internal/config"
	"macromate/internal/metrics"
)

// SearchResult is the response of the FoodData Central search endpoint.
type SearchResult struct {
	TotalHits int    `json:"totalHits"`
	Foods     []Food `json:"foods"`
}

// Food is a single matched food item. The pricing tier only uses the result
// set as a relevance gate, so just the identifying fields are decoded.
type Food struct {
	FDCID       int64  `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType"`
}

// Client is an interface for the USDA FoodData Central API.
type Client interface {
	// SearchFoods returns relevance-ranked matches for a free-text
	// ingredient name, or an empty result set when nothing matches.
	SearchFoods(ctx context.Context, query string) (*SearchResult, error)
}

// httpClient is the concrete HTTP implementation of the USDA client.
type httpClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	metrics *metrics.Store
}

// NewClient creates a new USDA FoodData Central client.
func NewClient(cfg *config.Config, store *metrics.Store) Client {
	return &httpClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: cfg.USDABaseURL,
		apiKey:  cfg.USDAAPIKey,
		metrics: store,
	}
}

func (c *httpClient) SearchFoods(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("pageSize", "3")
	params.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/foods/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.record(0, latency)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.record(resp.StatusCode, latency)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda api error: status %d", resp.StatusCode)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *httpClient) record(status int, latencyMS int64) {
	_ = c.metrics.Record(metrics.CallMetric{
		Provider:   "usda",
		Endpoint:   "/foods/search",
		StatusCode: status,
		LatencyMS:  latencyMS,
	})
}
