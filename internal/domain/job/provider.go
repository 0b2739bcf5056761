package job

import (
	"context"

	"github.com/honeycarbs/jobs-client/internal/domain"
)

// Provider represents an external job data source (Indeed, Adzuna, etc.)
type Provider interface {
	// e.g. "indeed" or "adzuna"
	Name() string

	// FetchJobs queries the remote API and returns normalized jobs in response
	// order together with the rest of the decoded payload.
	FetchJobs(ctx context.Context, query string, filters domain.JobSearchFilters) (FetchResult, error)

	// RequiredFields lists the listing keys the provider expects in a response
	RequiredFields() []string

	// ListingsPath is the top-level response key holding the listing array
	ListingsPath() string

	// CreateJobRecord maps one raw listing to a normalized job
	CreateJobRecord(raw RawListing) domain.Job
}

// FetchResult bundles the jobs of a single fetch with its response metadata
type FetchResult struct {
	Jobs     []domain.Job
	Metadata map[string]any
}
