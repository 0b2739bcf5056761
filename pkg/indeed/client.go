package indeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultBaseURL   = "https://api.indeed.com/ads/apisearch"
	defaultUserAgent = "jobs-client-indeed/0.1"
)

// NewClient instantiates an Indeed API client. The publisher key is part of
// the Query so it is checked per request, not here.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("indeed: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// Verb is the HTTP method used for searches
func (c *Client) Verb() string {
	return http.MethodGet
}

// URL builds the search request URL for q
func (c *Client) URL(q Query) (string, error) {
	if c == nil {
		return "", fmt.Errorf("indeed: client is nil")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("indeed: parse base url: %w", err)
	}
	u.RawQuery = q.Values().Encode()
	return u.String(), nil
}

// Search validates q, runs the request and returns the decoded response body.
// A body that is valid JSON but not an object decodes to a nil map.
func (c *Client) Search(ctx context.Context, q Query) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("indeed: client is nil")
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	u, err := c.URL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, c.Verb(), u, nil)
	if err != nil {
		return nil, fmt.Errorf("indeed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("indeed: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("indeed: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("indeed: decode response: %w", err)
	}

	payload, _ := decoded.(map[string]any)
	return payload, nil
}
