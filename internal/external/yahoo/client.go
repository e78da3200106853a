package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
	"github.com/kotraore/stock-forecast-dashboard/pkg/httputil"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

// Client fetches daily price history from the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// chartResponse is the top-level chart API container
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// FetchDaily implements contracts.SeriesProvider. period uses Yahoo
// range notation ("1mo", "6mo", "1y", ...).
func (c *Client) FetchDaily(ctx context.Context, symbol, period string) ([]contracts.PricePoint, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(period))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &contracts.NoDataError{Symbol: symbol}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	prices, err := c.parseChartResponse(symbol, body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"period": period,
		"count":  len(prices),
	}).Debug("Fetched daily prices")

	return prices, nil
}

// parseChartResponse extracts (date, close) pairs from the chart JSON.
// Rows with null closes (halted sessions) are skipped.
func (c *Client) parseChartResponse(symbol string, body []byte) ([]contracts.PricePoint, error) {
	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	if parsed.Chart.Error != nil {
		return nil, &contracts.NoDataError{Symbol: symbol}
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, &contracts.NoDataError{Symbol: symbol}
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, &contracts.NoDataError{Symbol: symbol}
	}

	closes := result.Indicators.Quote[0].Close
	var prices []contracts.PricePoint
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		prices = append(prices, contracts.PricePoint{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Close: *closes[i],
		})
	}

	if len(prices) == 0 {
		return nil, &contracts.NoDataError{Symbol: symbol}
	}

	return prices, nil
}
