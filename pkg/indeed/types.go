package indeed

import (
	"net/http"
	"strings"
)

// Config defines Indeed API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string // sent as the HTTP User-Agent header
}

// Client queries the Indeed publisher job search API
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Query holds the publisher API search parameters. Zero values are omitted
// from the request.
type Query struct {
	Publisher string // publisher key, required
	Version   string // API version, "2" when empty
	Format    string // only "json" is supported

	Keyword  string
	Location string
	Sort     string
	Radius   int
	SiteType string
	JobType  string
	Start    int
	Limit    int
	DaysBack int

	Highlight        *bool
	FilterDuplicates bool
	IncludeLatLong   bool

	Country   string
	Channel   string
	UserIP    string
	UserAgent string
}

// MissingParameterError lists required query parameters that were not set
type MissingParameterError struct {
	Params []string
}

func (e *MissingParameterError) Error() string {
	return "indeed: missing required parameters: " + strings.Join(e.Params, ", ")
}
