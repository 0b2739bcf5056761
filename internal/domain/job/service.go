package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/honeycarbs/jobs-client/internal/domain"
)

type Service interface {
	Search(ctx context.Context, query string, filters domain.JobSearchFilters) (domain.JobSearchResult, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	repo      Repository
	clock     func() time.Time
}

// WithProviders sets job providers
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return newService(cfg.repo, cfg.providers, cfg.clock)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, providers []Provider) (Service, error) {
	return newService(repo, providers, time.Now)
}

func newService(repo Repository, providers []Provider, clock func() time.Time) (*service, error) {
	if repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("job.Service: at least one provider is required")
	}
	if clock == nil {
		clock = time.Now
	}

	return &service{
		providers: providers,
		repo:      repo,
		clock:     clock,
	}, nil
}

type service struct {
	providers []Provider
	repo      Repository
	clock     func() time.Time
}

// Search queries providers in order and stores results. Jobs keep the
// position of their first occurrence; a later duplicate replaces the record.
func (s *service) Search(
	ctx context.Context,
	query string,
	filters domain.JobSearchFilters,
) (domain.JobSearchResult, error) {
	now := s.clock()

	if query == "" {
		return domain.JobSearchResult{}, fmt.Errorf("query is required")
	}

	type key struct {
		source     string
		externalID string
	}
	index := make(map[key]int)
	allJobs := make([]domain.Job, 0)
	sources := make([]domain.SourceSummary, 0, len(s.providers))
	sourceCount := 0
	var errs []error

	for _, p := range s.providers {
		summary := domain.SourceSummary{Name: p.Name()}

		res, err := p.FetchJobs(ctx, query, filters)
		if err != nil {
			summary.Error = err.Error()
			sources = append(sources, summary)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		summary.Count = len(res.Jobs)
		summary.Metadata = res.Metadata
		sources = append(sources, summary)
		if len(res.Jobs) > 0 {
			sourceCount++
		}

		for _, j := range res.Jobs {
			if j.Source == "" || j.ExternalID == "" {
				continue
			}
			k := key{source: j.Source, externalID: j.ExternalID}

			if j.ID == uuid.Nil {
				j.ID = uuid.New()
			}
			if j.FetchedAt.IsZero() {
				j.FetchedAt = now
			}

			if i, ok := index[k]; ok {
				allJobs[i] = j
				continue
			}
			index[k] = len(allJobs)
			allJobs = append(allJobs, j)
		}
	}

	if len(errs) == len(s.providers) {
		return domain.JobSearchResult{Sources: sources, FetchedAt: now}, errors.Join(errs...)
	}

	if len(allJobs) > 0 {
		if err := s.repo.UpsertJobs(ctx, allJobs); err != nil {
			return domain.JobSearchResult{}, err
		}
	}

	summaries := make([]domain.JobSummary, 0, len(allJobs))
	for _, j := range allJobs {
		summaries = append(summaries, j.Summarize())
	}

	return domain.JobSearchResult{
		Jobs:        summaries,
		Sources:     sources,
		FetchedAt:   now,
		SourceCount: sourceCount,
	}, nil
}
