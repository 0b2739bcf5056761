package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Query    string   `json:"query" jsonschema:"Keyword job search query"`
	Location string   `json:"location,omitempty" jsonschema:"Preferred location filter, e.g. Austin, TX"`
	Remote   *bool    `json:"remote,omitempty" jsonschema:"Whether to restrict to remote postings"`
	Skills   []string `json:"skills,omitempty" jsonschema:"List of required skills"`
	Radius   int      `json:"radius,omitempty" jsonschema:"Search radius around the location"`
	DaysBack int      `json:"days_back,omitempty" jsonschema:"Only postings newer than this many days"`
	Start    int      `json:"start,omitempty" jsonschema:"Result offset"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum results per provider"`
}

// JobSearchResult is the structured response of job_search
type JobSearchResult struct {
	Jobs        []domain.JobSummary    `json:"jobs" jsonschema:"Normalized job postings"`
	Sources     []domain.SourceSummary `json:"sources" jsonschema:"Per-provider counts, metadata and errors"`
	FetchedAt   time.Time              `json:"fetched_at" jsonschema:"Timestamp of the search"`
	SourceCount int                    `json:"source_count" jsonschema:"Providers that returned jobs"`
}

type jobSearchTool struct {
	service job.Service
	logger  *logging.Logger
}

// WithJobSearch registers the job_search tool
func WithJobSearch(service job.Service) Option {
	return func(reg *registry) {
		handler := jobSearchTool{service: service, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search external job APIs (Indeed, Adzuna), normalize, and store job postings",
		}, handler.handle)
		reg.add("job_search")
	}
}

func (t jobSearchTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Query) == "" {
		return textResult("[job_search] query is required"), nil, fmt.Errorf("query is required")
	}

	if t.service == nil {
		err := fmt.Errorf("job service not configured")
		t.logger.Error("job_search: service not available", "err", err)
		return nil, nil, err
	}

	t.logger.Info("job_search request",
		"query", params.Query,
		"location", params.Location,
		"skills", params.Skills,
		"limit", params.Limit,
	)

	filters := domain.JobSearchFilters{
		Location: params.Location,
		Remote:   params.Remote,
		Skills:   params.Skills,
		Radius:   params.Radius,
		DaysBack: params.DaysBack,
		Start:    params.Start,
		Limit:    params.Limit,
	}

	res, err := t.service.Search(ctx, params.Query, filters)
	if err != nil {
		t.logger.Error("job_search: search failed", "err", err, "query", params.Query)
		return nil, nil, fmt.Errorf("job search failed: %w", err)
	}

	result := JobSearchResult{
		Jobs:        res.Jobs,
		Sources:     res.Sources,
		FetchedAt:   res.FetchedAt,
		SourceCount: res.SourceCount,
	}

	t.logger.Info("job_search completed",
		"jobs", len(result.Jobs),
		"source_count", result.SourceCount,
	)

	return textResult(formatSearch(result)), result, nil
}

func formatSearch(result JobSearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[job_search] Found %d job(s) from %d source(s)", len(result.Jobs), result.SourceCount)

	for _, src := range result.Sources {
		if src.Error != "" {
			fmt.Fprintf(&b, "\n! %s: %s", src.Name, src.Error)
		}
	}

	for _, j := range result.Jobs {
		fmt.Fprintf(&b, "\n- %s @ %s (%s) [%s] %s", j.Title, j.Company, j.Location, j.Source, j.URL)
	}

	return b.String()
}
