// Package scheduler periodically runs saved keywords through the job service
// and tracks which listings were already discovered.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

// Searcher is the subset of job.Service used by discovery runs
type Searcher interface {
	Search(ctx context.Context, query string, filters domain.JobSearchFilters) (domain.JobSearchResult, error)
}

// Tracker remembers discovered listings and the last metadata per source
type Tracker interface {
	// MarkSeen records external ids for source and returns how many were new
	MarkSeen(ctx context.Context, source string, ids []string) (int, error)
	SaveMetadata(ctx context.Context, source string, meta map[string]any) error
}

// RunStats summarizes one discovery run
type RunStats struct {
	Keywords int
	Jobs     int
	New      int
	Failed   int
}

// Scheduler wraps robfig/cron and runs discovery on its spec
type Scheduler struct {
	cron     *cron.Cron
	searcher Searcher
	tracker  Tracker
	logger   *logging.Logger
	spec     string
	keywords []string
	filters  domain.JobSearchFilters

	// mu is held for the duration of a run
	mu sync.Mutex
	// wg tracks runs started outside cron
	wg sync.WaitGroup
}

// New creates a Scheduler. A nil tracker counts every listing as new.
func New(
	searcher Searcher,
	tracker Tracker,
	logger *logging.Logger,
	spec string,
	keywords []string,
	filters domain.JobSearchFilters,
) (*Scheduler, error) {
	if searcher == nil {
		return nil, fmt.Errorf("scheduler: searcher is required")
	}
	if spec == "" {
		return nil, fmt.Errorf("scheduler: cron spec is required")
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("scheduler: at least one keyword is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if tracker == nil {
		tracker = noopTracker{}
	}

	cronLogger := cron.PrintfLogger(logger.Named("cron"))

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
		searcher: searcher,
		tracker:  tracker,
		logger:   logger.Named("scheduler"),
		spec:     spec,
		keywords: keywords,
		filters:  filters,
	}, nil
}

// Start registers the discovery job, starts cron and kicks off one run
// immediately. Runs never overlap: a tick that finds a run in progress is skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.runScheduled(ctx)
	}); err != nil {
		return fmt.Errorf("scheduler: add job %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("discovery scheduler started", "spec", s.spec, "keywords", s.keywords)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runScheduled(ctx)
	}()

	return nil
}

// Shutdown stops cron and waits for a running discovery to finish or ctx to expire
func (s *Scheduler) Shutdown(ctx context.Context) error {
	stopped := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("discovery scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler: shutdown: %w", ctx.Err())
	}
}

// runScheduled skips the run when another one still holds the lock
func (s *Scheduler) runScheduled(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Info("discovery run skipped, previous run still active")
		return
	}
	defer s.mu.Unlock()

	s.discover(ctx)
}

// RunOnce searches every keyword and records new listings. It waits for a
// run already in progress.
func (s *Scheduler) RunOnce(ctx context.Context) RunStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discover(ctx)
}

func (s *Scheduler) discover(ctx context.Context) RunStats {
	stats := RunStats{Keywords: len(s.keywords)}
	s.logger.Info("discovery run started", "keywords", len(s.keywords))

	for _, keyword := range s.keywords {
		res, err := s.searcher.Search(ctx, keyword, s.filters)
		if err != nil {
			stats.Failed++
			s.logger.Warn("discovery search failed", "keyword", keyword, "err", err)
			continue
		}

		stats.Jobs += len(res.Jobs)
		stats.New += s.track(ctx, keyword, res)
	}

	s.logger.Info("discovery run complete",
		"keywords", stats.Keywords,
		"jobs", stats.Jobs,
		"new", stats.New,
		"failed", stats.Failed,
	)
	return stats
}

func (s *Scheduler) track(ctx context.Context, keyword string, res domain.JobSearchResult) int {
	bySource := make(map[string][]string)
	for _, j := range res.Jobs {
		key := j.ExternalID
		if key == "" {
			key = j.ID.String()
		}
		bySource[j.Source] = append(bySource[j.Source], key)
	}

	added := 0
	for source, ids := range bySource {
		n, err := s.tracker.MarkSeen(ctx, source, ids)
		if err != nil {
			s.logger.Warn("failed to track discovered jobs", "source", source, "keyword", keyword, "err", err)
			continue
		}
		added += n
	}

	for _, src := range res.Sources {
		if src.Error != "" || src.Metadata == nil {
			continue
		}
		if err := s.tracker.SaveMetadata(ctx, src.Name, src.Metadata); err != nil {
			s.logger.Warn("failed to store source metadata", "source", src.Name, "err", err)
		}
	}

	return added
}

type noopTracker struct{}

func (noopTracker) MarkSeen(_ context.Context, _ string, ids []string) (int, error) {
	return len(ids), nil
}

func (noopTracker) SaveMetadata(context.Context, string, map[string]any) error {
	return nil
}
