package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const fetcherUserAgent = "finrag/1.0 (financial data ingestion)"

// APIFetcher pulls financials from a JSON HTTP endpoint serving
// GET {base}/v1/financials/{ticker}. The base URL comes from the
// FINANCIALS_API_URL environment variable when not set explicitly.
type APIFetcher struct {
	baseURL string
	client  *http.Client
}

// NewAPIFetcher creates a fetcher against the given base URL. An empty base
// falls back to FINANCIALS_API_URL.
func NewAPIFetcher(baseURL string) *APIFetcher {
	if baseURL == "" {
		baseURL = os.Getenv("FINANCIALS_API_URL")
	}
	return &APIFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchFinancials downloads and decodes the raw financials for one ticker.
func (f *APIFetcher) FetchFinancials(ctx context.Context, ticker string) (*RawFinancials, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("financials API base URL not configured (set FINANCIALS_API_URL)")
	}

	endpoint := fmt.Sprintf("%s/v1/financials/%s", f.baseURL, url.PathEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetcherUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("financials fetch for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w for ticker %s", ErrNoData, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("financials API returned status %d for %s: %s",
			resp.StatusCode, ticker, strings.TrimSpace(string(body)))
	}

	var raw RawFinancials
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode financials for %s: %w", ticker, err)
	}
	if raw.Info.Name == "" {
		raw.Info.Name = ticker
	}
	return &raw, nil
}
