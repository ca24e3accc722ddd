package customsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scribe/internal/search"
)

// DefaultBaseURL is the Custom Search JSON API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Item is a single search hit.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Response models the subset of the API payload scribe reads.
type Response struct {
	Items []Item `json:"items"`
}

// Client queries the Custom Search API.
type Client struct {
	baseURL    string
	site       string
	httpClient *http.Client
}

var _ search.Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSite restricts results to a single host through the siteSearch
// parameter.
func WithSite(site string) Option {
	return func(c *Client) {
		c.site = strings.TrimSpace(site)
	}
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("custom search base url required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search runs query with cred and returns the status code and, on 200, up to
// limit result links. Non-200 responses are not errors; only a request that
// could not complete or a malformed 200 body is.
func (c *Client) Search(ctx context.Context, query string, cred search.Credential, limit int) (int, []string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, nil, fmt.Errorf("parse custom search url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", cred.APIKey)
	params.Set("cx", cred.CollectionID)
	if limit > 0 {
		params.Set("num", strconv.Itoa(limit))
	}
	if c.site != "" {
		params.Set("siteSearch", c.site)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode custom search response (latency=%v): %w", latency, err)
	}
	links := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		if link := strings.TrimSpace(item.Link); link != "" {
			links = append(links, link)
		}
		if limit > 0 && len(links) == limit {
			break
		}
	}
	return resp.StatusCode, links, nil
}
