package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"macromate/internal/config"
	"macromate/internal/metrics"
)

// Client is an interface for the Spoonacular recipe API.
type Client interface {
	// SearchRecipes runs a complexSearch filtered by the query's macro
	// bounds and returns up to Number candidate recipes with nutrition.
	SearchRecipes(ctx context.Context, q SearchQuery) ([]Recipe, error)
	// RecipeInformation fetches full recipe detail (ingredients with
	// aisle and pricing data) for a single recipe.
	RecipeInformation(ctx context.Context, id int64) (*Recipe, error)
}

// httpClient is the concrete HTTP implementation of the Spoonacular client.
type httpClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	metrics *metrics.Store
}

// NewClient creates a new Spoonacular API client.
func NewClient(cfg *config.Config, store *metrics.Store) Client {
	return &httpClient{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.SpoonacularBaseURL,
		apiKey:  cfg.SpoonacularAPIKey,
		metrics: store,
	}
}

func (c *httpClient) SearchRecipes(ctx context.Context, q SearchQuery) ([]Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("type", q.MealType)
	params.Set("minCalories", formatBound(q.MinCalories))
	params.Set("maxCalories", formatBound(q.MaxCalories))
	params.Set("minProtein", formatBound(q.MinProtein))
	params.Set("maxProtein", formatBound(q.MaxProtein))
	params.Set("minFat", formatBound(q.MinFat))
	params.Set("maxFat", formatBound(q.MaxFat))
	params.Set("minCarbs", formatBound(q.MinCarbs))
	params.Set("maxCarbs", formatBound(q.MaxCarbs))
	params.Set("addRecipeInformation", "true")
	params.Set("addRecipeNutrition", "true")
	params.Set("number", strconv.Itoa(q.Number))

	var resp searchResponse
	if err := c.get(ctx, "/recipes/complexSearch", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *httpClient) RecipeInformation(ctx context.Context, id int64) (*Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	// Nutrition is not needed for shopping lists.
	params.Set("includeNutrition", "false")
	params.Set("addWinePairing", "false")
	params.Set("addTasteData", "false")

	var rec Recipe
	endpoint := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.get(ctx, endpoint, params, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// get executes a GET request against the API and decodes the JSON response.
func (c *httpClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.record(endpoint, 0, latency)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.record(endpoint, resp.StatusCode, latency)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spoonacular api error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *httpClient) record(endpoint string, status int, latencyMS int64) {
	// Metric failures never affect the call itself.
	_ = c.metrics.Record(metrics.CallMetric{
		Provider:   "spoonacular",
		Endpoint:   endpoint,
		StatusCode: status,
		LatencyMS:  latencyMS,
	})
}

// formatBound renders a macro bound without trailing zeros, the way the API
// expects whole-number filters.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
