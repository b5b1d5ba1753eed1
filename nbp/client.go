package nbp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the NBP C-table (bid/ask) exchange rates endpoint
const DefaultBaseURL = "https://api.nbp.pl/api/exchangerates/rates/c/"

var (
	ErrFetch = errors.New("unable to fetch rates")

	// ErrNoData marks a transport-level success that carried zero rates
	ErrNoData = fmt.Errorf("%w: no data", ErrFetch)
)

// Downloader is the capability for fetching raw rate payloads,
// letting the concrete API client be substituted
type Downloader interface {
	// Fetch downloads the raw payload for the given request extension
	Fetch(ctx context.Context, extension string) ([]byte, error)
}

// Client is the NBP API HTTP client
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new NBP API client.
// The timeout bounds the entire request, body read included
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// SetTimeout updates the request timeout for subsequent fetches
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// Fetch performs a single blocking GET of baseURL + extension,
// returning the raw response body
func (c *Client) Fetch(ctx context.Context, extension string) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+extension,
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create GET request: %w", ErrFetch, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: invalid status code received: %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read response body: %w", ErrFetch, err)
	}

	return body, nil
}
