package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
	"github.com/kotraore/stock-forecast-dashboard/pkg/config"
	"github.com/kotraore/stock-forecast-dashboard/pkg/httputil"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		Provider: config.ProviderConfig{
			BaseURL:    baseURL,
			Timeout:    5 * time.Second,
			RatePerSec: 1000,
			RateBurst:  1000,
			MaxRetries: 0,
			RetryDelay: time.Millisecond,
		},
	}
	log := logger.New(cfg)

	return NewClient(baseURL, httputil.New(cfg, log), log)
}

func TestParseChartResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      int // expected number of price points
		wantNoDat bool
		wantErr   bool
	}{
		{
			name: "valid data",
			body: `{"chart":{"result":[{"timestamp":[1767571200,1767657600,1767744000],
				"indicators":{"quote":[{"close":[101.5,102.25,103.0]}]}}],"error":null}}`,
			want: 3,
		},
		{
			name: "null closes are skipped",
			body: `{"chart":{"result":[{"timestamp":[1767571200,1767657600,1767744000],
				"indicators":{"quote":[{"close":[101.5,null,103.0]}]}}],"error":null}}`,
			want: 2,
		},
		{
			name:      "chart error",
			body:      `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`,
			wantNoDat: true,
		},
		{
			name:      "empty result",
			body:      `{"chart":{"result":[],"error":null}}`,
			wantNoDat: true,
		},
		{
			name: "all closes null",
			body: `{"chart":{"result":[{"timestamp":[1767571200],
				"indicators":{"quote":[{"close":[null]}]}}],"error":null}}`,
			wantNoDat: true,
		},
		{
			name:    "malformed json",
			body:    `{"chart":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{}
			got, err := c.parseChartResponse("TEST", []byte(tt.body))

			if tt.wantNoDat {
				var noData *contracts.NoDataError
				if !errors.As(err, &noData) {
					t.Fatalf("expected NoDataError, got %v", err)
				}
				return
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseChartResponse() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("parseChartResponse() got %d points, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseChartResponse_DatesNormalized(t *testing.T) {
	// 1767571200 = 2026-01-05 00:00:00 UTC
	body := `{"chart":{"result":[{"timestamp":[1767571200],
		"indicators":{"quote":[{"close":[150.0]}]}}],"error":null}}`

	c := &Client{}
	got, err := c.parseChartResponse("AAPL", []byte(body))
	if err != nil {
		t.Fatalf("parseChartResponse() error = %v", err)
	}

	want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", got[0].Date, want)
	}
	if got[0].Close != 150.0 {
		t.Errorf("close = %v, want 150", got[0].Close)
	}
}

func TestFetchDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("range") != "6mo" {
			t.Errorf("unexpected range: %s", r.URL.Query().Get("range"))
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected interval: %s", r.URL.Query().Get("interval"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1767571200,1767657600],
			"indicators":{"quote":[{"close":[101.5,102.25]}]}}],"error":null}}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	prices, err := c.FetchDaily(context.Background(), "AAPL", "6mo")
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2", len(prices))
	}
	if prices[0].Close != 101.5 || prices[1].Close != 102.25 {
		t.Errorf("unexpected closes: %+v", prices)
	}
}

func TestFetchDaily_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.FetchDaily(context.Background(), "NOPE", "6mo")
	var noData *contracts.NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
	if noData.Symbol != "NOPE" {
		t.Errorf("Symbol = %s, want NOPE", noData.Symbol)
	}
}
