package adzuna

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobs-client/internal/domain"
	jobdomain "github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/adzuna"
)

const (
	providerName = "adzuna"
	listingsPath = "results"
)

var responseFields = []string{
	"id",
	"title",
	"description",
	"redirect_url",
	"created",
	"company",
	"location",
	"latitude",
	"longitude",
	"salary_min",
	"salary_max",
	"contract_time",
}

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	Search(ctx context.Context, query string, params adzuna.SearchParams) (map[string]any, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) ListingsPath() string {
	return listingsPath
}

func (p *Provider) RequiredFields() []string {
	out := make([]string, len(responseFields))
	copy(out, responseFields)
	return out
}

// FetchJobs queries Adzuna and returns normalized jobs
func (p *Provider) FetchJobs(ctx context.Context, query string, filters domain.JobSearchFilters) (jobdomain.FetchResult, error) {
	if p == nil || p.client == nil {
		return jobdomain.FetchResult{}, fmt.Errorf("adzuna provider: client is nil")
	}
	if query == "" {
		return jobdomain.FetchResult{}, fmt.Errorf("adzuna provider: %w: what", jobdomain.ErrMissingParameter)
	}

	params := adzuna.SearchParams{
		Location: filters.Location,
		Remote:   filters.Remote,
		Skills:   filters.Skills,
		Radius:   filters.Radius,
		DaysBack: filters.DaysBack,
		Limit:    filters.Limit,
	}
	if filters.Limit > 0 && filters.Start > 0 {
		params.Page = filters.Start/filters.Limit + 1
	}

	payload, err := p.client.Search(ctx, query, params)
	if err != nil {
		return jobdomain.FetchResult{}, err
	}

	return jobdomain.Collect(p, payload, query), nil
}

// CreateJobRecord maps one Adzuna result
func (p *Provider) CreateJobRecord(raw jobdomain.RawListing) domain.Job {
	externalID := raw.String("id")
	company := raw.Object("company").String("display_name")
	location := raw.Object("location").String("display_name")

	j := domain.Job{
		ID:          jobdomain.StableID(providerName, externalID),
		Title:       raw.String("title"),
		Name:        raw.String("title"),
		Description: raw.String("description"),
		URL:         raw.String("redirect_url"),
		Source:      providerName,
		ExternalID:  externalID,
		Location:    location,
		Company: domain.CompanyRef{
			ID:   jobdomain.CompanySlug(company),
			Name: company,
		},
		Latitude:      raw.Float("latitude"),
		Longitude:     raw.Float("longitude"),
		MinimumSalary: raw.Float("salary_min"),
		MaximumSalary: raw.Float("salary_max"),
	}

	j.City, j.State = jobdomain.SplitLocation(location)

	if created := raw.String("created"); created != "" {
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			j.PostedAt = ts
		}
	}

	return j
}

var _ jobdomain.Provider = (*Provider)(nil)
