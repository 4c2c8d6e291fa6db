package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"scaleout-planner/internal/model"
)

// PriceClient provides methods to fetch historical spot prices from the
// price API.
type PriceClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewPriceClient creates a new price API client.
// If baseURL is empty, defaults to "https://api.spotprice.io".
func NewPriceClient(apiKey string, baseURL string) *PriceClient {
	if baseURL == "" {
		baseURL = "https://api.spotprice.io"
	}
	return &PriceClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// QuerySymbolParams defines parameters for querying price history.
type QuerySymbolParams struct {
	Market    string    // e.g., "spot"
	Symbol    string    // e.g., "BTC-USD"
	StartTime time.Time // Start of time range
	EndTime   time.Time // End of time range
	Download  bool      // If true, sets download=true query param
}

// PriceAPIError represents an error from the price API.
type PriceAPIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *PriceAPIError) Error() string {
	return e.Message
}

// QuerySymbol fetches price history for a symbol from the price API.
//
// If caching is enabled (ENABLE_PRICE_CACHE=true), responses may be served
// from the local development cache; see cache.go for the restrictions.
func (c *PriceClient) QuerySymbol(params QuerySymbolParams) (*model.SpotPriceResponse, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}

	// Check cache first (only if enabled for development).
	cache := GetCache()
	if cache != nil {
		cacheKey := GenerateCacheKey(params)
		if cached, found := cache.Get(cacheKey); found {
			log.Printf("[PriceAPI] Cache hit: %d ticks (market=%s, symbol=%s, start=%s, end=%s)",
				len(cached.Data), params.Market, params.Symbol,
				params.StartTime.Format("2006-01-02"), params.EndTime.Format("2006-01-02"))
			return cached, nil
		}
	}
	if params.Market == "" {
		return nil, fmt.Errorf("market is required")
	}
	if params.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if params.StartTime.IsZero() || params.EndTime.IsZero() {
		return nil, fmt.Errorf("start_time and end_time are required")
	}
	if params.StartTime.After(params.EndTime) {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	// Build URL: /v1/markets/{market}/prices/{symbol}
	path := fmt.Sprintf("/v1/markets/%s/prices/%s", params.Market, params.Symbol)
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("start_time", params.StartTime.Format("2006-01-02"))
	q.Set("end_time", params.EndTime.Format("2006-01-02"))
	if params.Download {
		q.Set("download", "true")
	}
	u.RawQuery = q.Encode()

	log.Printf("[PriceAPI] Request: GET %s (market=%s, symbol=%s, start=%s, end=%s)",
		u.Path,
		params.Market,
		params.Symbol,
		params.StartTime.Format("2006-01-02"),
		params.EndTime.Format("2006-01-02"))

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[PriceAPI] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[PriceAPI] Response: %d %s (duration: %v, market=%s, symbol=%s)",
		resp.StatusCode,
		resp.Status,
		duration,
		params.Market,
		params.Symbol)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusForbidden:
		log.Printf("[PriceAPI] Error: 403 Forbidden - Invalid API key or insufficient permissions (market=%s, symbol=%s)",
			params.Market, params.Symbol)
		return nil, &PriceAPIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Printf("[PriceAPI] Error: 429 Rate Limit Exceeded - Retry after: %s (market=%s, symbol=%s)",
			retryAfter, params.Market, params.Symbol)
		return nil, &PriceAPIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnauthorized:
		log.Printf("[PriceAPI] Error: 401 Unauthorized - Invalid API key (market=%s, symbol=%s)",
			params.Market, params.Symbol)
		return nil, &PriceAPIError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: Invalid API key",
		}
	default:
		log.Printf("[PriceAPI] Error: %d %s (market=%s, symbol=%s)",
			resp.StatusCode, resp.Status, params.Market, params.Symbol)
		return nil, &PriceAPIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.SpotPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[PriceAPI] Error decoding response: %v (market=%s, symbol=%s)", err, params.Market, params.Symbol)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[PriceAPI] Success: Received %d ticks (market=%s, symbol=%s)",
		len(result.Data), params.Market, params.Symbol)

	// Cache the response if caching is enabled (development only).
	if cache := GetCache(); cache != nil {
		cacheKey := GenerateCacheKey(params)
		cache.Set(cacheKey, &result)
		log.Printf("[PriceAPI] Cached response (market=%s, symbol=%s)", params.Market, params.Symbol)
	}

	return &result, nil
}

// validateAPIKey validates that the API key is present and not obviously
// invalid.
func (c *PriceClient) validateAPIKey() error {
	if c.APIKey == "" {
		return &PriceAPIError{
			StatusCode: 0,
			Code:       "MISSING_API_KEY",
			Message:    "API key is required",
		}
	}
	// We don't validate format here, but reject obviously bad keys.
	if len(c.APIKey) < 10 {
		return &PriceAPIError{
			StatusCode: 0,
			Code:       "INVALID_API_KEY_FORMAT",
			Message:    "API key appears to be invalid (too short)",
		}
	}
	return nil
}

// QuerySymbolByString is a convenience method that parses date strings.
// startDate and endDate should be in "YYYY-MM-DD" format.
func (c *PriceClient) QuerySymbolByString(market, symbol, startDate, endDate string) (*model.SpotPriceResponse, error) {
	startTime, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date format (expected YYYY-MM-DD): %w", err)
	}
	endTime, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date format (expected YYYY-MM-DD): %w", err)
	}

	return c.QuerySymbol(QuerySymbolParams{
		Market:    market,
		Symbol:    symbol,
		StartTime: startTime,
		EndTime:   endTime,
		Download:  true,
	})
}
