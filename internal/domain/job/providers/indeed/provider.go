package indeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobs-client/internal/domain"
	jobdomain "github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/indeed"
)

const (
	providerName = "indeed"
	listingsPath = "results"
)

var responseFields = []string{
	"jobtitle",
	"company",
	"formattedLocation",
	"formattedLocationFull",
	"source",
	"date",
	"snippet",
	"url",
	"jobkey",
	"latitude",
	"longitude",
}

// Indeed sends RFC1123 dates; the rest cover hand-built and older payloads.
var dateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	"2006-01-02",
	"2006-1-2",
}

// searchClient describes the subset of the Indeed client used by the provider.
type searchClient interface {
	Search(ctx context.Context, q indeed.Query) (map[string]any, error)
}

// Provider implements job.Provider using the Indeed publisher API
type Provider struct {
	client searchClient
	base   indeed.Query
}

// NewProvider builds an Indeed provider. base carries the parameters shared
// by every search (publisher key, version, country, ...).
func NewProvider(client searchClient, base indeed.Query) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("indeed provider: client is required")
	}
	return &Provider{client: client, base: base}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return providerName
}

// ListingsPath returns the response key holding the listings
func (p *Provider) ListingsPath() string {
	return listingsPath
}

// RequiredFields returns the listing keys every Indeed result carries
func (p *Provider) RequiredFields() []string {
	out := make([]string, len(responseFields))
	copy(out, responseFields)
	return out
}

// Query returns the request parameters FetchJobs would send
func (p *Provider) Query(query string, filters domain.JobSearchFilters) indeed.Query {
	q := p.base

	keywords := make([]string, 0, 1+len(filters.Skills))
	if query != "" {
		keywords = append(keywords, query)
	}
	keywords = append(keywords, filters.Skills...)
	q.Keyword = strings.Join(keywords, " ")

	if filters.Location != "" {
		q.Location = filters.Location
	}
	if filters.Remote != nil && *filters.Remote && q.Location == "" {
		q.Location = "remote" // no dedicated remote filter in the publisher API
	}
	if filters.Radius > 0 {
		q.Radius = filters.Radius
	}
	if filters.DaysBack > 0 {
		q.DaysBack = filters.DaysBack
	}
	if filters.Start > 0 {
		q.Start = filters.Start
	}
	if filters.Limit > 0 {
		q.Limit = filters.Limit
	}

	return q
}

// FetchJobs queries Indeed and returns normalized jobs with the response
// metadata. Without a publisher key it fails before any request is made.
func (p *Provider) FetchJobs(ctx context.Context, query string, filters domain.JobSearchFilters) (jobdomain.FetchResult, error) {
	if p == nil || p.client == nil {
		return jobdomain.FetchResult{}, fmt.Errorf("indeed provider: client is nil")
	}

	q := p.Query(query, filters)
	if err := q.Validate(); err != nil {
		return jobdomain.FetchResult{}, fmt.Errorf("indeed provider: %w: %w", jobdomain.ErrMissingParameter, err)
	}

	payload, err := p.client.Search(ctx, q)
	if err != nil {
		return jobdomain.FetchResult{}, fmt.Errorf("indeed provider: search: %w", err)
	}

	return jobdomain.Collect(p, payload, q.Keyword), nil
}

// CreateJobRecord maps one Indeed listing. Missing keys leave fields empty.
func (p *Provider) CreateJobRecord(raw jobdomain.RawListing) domain.Job {
	location := raw.String("formattedLocation")
	jobKey := raw.String("jobkey")
	company := raw.String("company")

	j := domain.Job{
		ID:                 jobdomain.StableID(providerName, jobKey),
		Title:              raw.String("jobtitle"),
		Name:               raw.String("jobtitle"),
		Description:        raw.String("snippet"),
		URL:                raw.String("url"),
		Source:             providerName,
		ExternalID:         jobKey,
		Location:           location,
		JavascriptFunction: raw.String("onmousedown"),
		Company: domain.CompanyRef{
			ID:   jobdomain.CompanySlug(company),
			Name: company,
		},
		PostedAt:  parseDate(raw.String("date")),
		Latitude:  raw.Float("latitude"),
		Longitude: raw.Float("longitude"),
	}

	j.City, j.State = jobdomain.SplitLocation(location)
	j.PostalCode = postalCode(location, raw.String("formattedLocationFull"))

	return j
}

// postalCode strips "<location> " from the full location. Anything other
// than "<location> <postal>" comes back as whatever is left after the removal.
func postalCode(location, full string) string {
	return strings.Replace(full, location+" ", "", 1)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

var _ jobdomain.Provider = (*Provider)(nil)
