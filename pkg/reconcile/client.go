package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ofitec/conciliador/pkg/cache"
)

// DefaultBaseURL is the local-development fallback when no base URL is
// configured and none of the environment variables are set.
const DefaultBaseURL = "http://localhost:5555/api"

// ClientConfig represents the configuration for the reconciliation client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30 seconds
	Cache   cache.Repository
}

// Client is a reconciliation service API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      cache.Repository
}

// ResolveBaseURL resolves the API base URL: an explicitly configured value
// wins, then CONCILIADOR_API_BASE, then NEXT_PUBLIC_API_BASE (kept for
// parity with the original dashboard deployment), then the local fallback.
func ResolveBaseURL(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv("CONCILIADOR_API_BASE"); v != "" {
		return v
	}
	if v := os.Getenv("NEXT_PUBLIC_API_BASE"); v != "" {
		return v
	}
	return DefaultBaseURL
}

// NewClient creates a new reconciliation API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: ResolveBaseURL(config.BaseURL),
		cache:   config.Cache,
	}
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSuggestions requests ranked match candidates for a source record.
// Candidates are returned in backend order; the caller must not re-sort
// them. The request is never retried automatically.
func (c *Client) FetchSuggestions(ctx context.Context, source Source, opts SuggestOptions) ([]Candidate, error) {
	if opts.Days == 0 && opts.AmountTol == 0 {
		opts = DefaultSuggestOptions()
	}

	cacheKey := suggestionsCacheKey(source, opts)
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			var items []Candidate
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	reqBody := suggestionsRequest{
		SourceType: source.Type,
		Days:       opts.Days,
		AmountTol:  opts.AmountTol,
		ID:         source.ID,
		Amount:     source.Amount,
		Date:       source.Date,
		Ref:        source.Ref,
		Currency:   source.Currency,
	}

	var resp suggestionsResponse
	if err := c.postJSON(ctx, "/reconcile/suggestions", reqBody, nil, &resp); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(resp.Items); err == nil {
			_ = c.cache.Set(cacheKey, string(data))
		}
	}

	return resp.Items, nil
}

// Confirm submits a user-confirmed link. Each call carries a fresh UUID in
// the Idempotency-Key header so a duplicate submission (retry, double
// client) can be collapsed server-side. Confirmations are never cached and
// never retried automatically.
func (c *Client) Confirm(ctx context.Context, confirmation Confirmation) (bool, error) {
	headers := map[string]string{
		"Idempotency-Key": uuid.New().String(),
	}

	var resp confirmResponse
	if err := c.postJSON(ctx, "/reconcile/confirm", confirmation, headers, &resp); err != nil {
		return false, err
	}

	return resp.Accepted, nil
}

// Links lists already-established links for a record. Read-only.
func (c *Client) Links(ctx context.Context, filter LinkFilter) ([]Link, error) {
	params := url.Values{}
	switch {
	case filter.ExpenseID != "":
		params.Set("expense_id", filter.ExpenseID)
	case filter.TaxPeriod != "":
		params.Set("tax_period", filter.TaxPeriod)
		params.Set("tax_tipo", filter.TaxTipo)
	case filter.SourceRef != "":
		params.Set("source_type", string(filter.SourceType))
		params.Set("source_ref", filter.SourceRef)
	}

	endpoint := fmt.Sprintf("%s/reconcile/links?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "list links", Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.parseError(httpResp)
	}

	var resp linksResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.Items, nil
}

// postJSON sends a JSON POST and decodes a 2xx response into out.
func (c *Client) postJSON(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseError converts a non-2xx response into a BackendError, preserving
// whatever status and message the service provided.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &BackendError{Status: resp.StatusCode, Message: "failed to read error response"}
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description,omitempty"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &BackendError{Status: resp.StatusCode, Message: string(body)}
	}

	return &BackendError{Status: resp.StatusCode, Code: errResp.Error, Message: errResp.ErrorDescription}
}

// suggestionsCacheKey builds a stable cache key from the source descriptor
// and tolerance window.
func suggestionsCacheKey(source Source, opts SuggestOptions) string {
	amount := ""
	if source.Amount != nil {
		amount = fmt.Sprintf("%.2f", *source.Amount)
	}
	return fmt.Sprintf("sug:%s:%s:%s:%s:%s:%d:%g",
		source.Type, source.ID, source.Ref, source.Date, amount, opts.Days, opts.AmountTol)
}
