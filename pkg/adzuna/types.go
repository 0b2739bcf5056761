package adzuna

import (
	"net/http"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// SearchParams describe a job search request
type SearchParams struct {
	Location string
	Remote   *bool
	Skills   []string
	Radius   int // km, ignored when Remote is set
	DaysBack int
	Page     int // 1-based
	Limit    int // overrides Config.PageSize when > 0
}
