package mcp

import (
	"context"

	"github.com/honeycarbs/jobs-client/internal/config"
	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

// LoadResources wires resources from cfg. When storage is unreachable it
// falls back to providers backed by an in-process repository that stores
// nothing, so searches keep working without persistence.
func LoadResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func()) {
	res, cleanup, err := InitializeResources(ctx, cfg)
	if err == nil {
		logResources(cfg, res, logger)
		return res, cleanup
	}

	logger.Warn("failed to initialize resources, running without storage", "err", err)

	fallback, ferr := fallbackResources(ctx, cfg)
	if ferr != nil {
		logger.Error("failed to build fallback resources", "err", ferr)
		return &Resources{}, func() {}
	}

	logResources(cfg, fallback, logger)
	return fallback, func() {}
}

func fallbackResources(ctx context.Context, cfg config.Config) (*Resources, error) {
	indeedClient, err := provideIndeedClient(cfg)
	if err != nil {
		return nil, err
	}
	indeedP, err := provideIndeedProvider(indeedClient, cfg)
	if err != nil {
		return nil, err
	}
	adzunaP, err := provideAdzunaProvider(cfg)
	if err != nil {
		return nil, err
	}
	providers := provideJobProviders(indeedP, adzunaP)

	repo := stubJobRepository{}
	svc, err := job.NewServiceWithDeps(repo, providers)
	if err != nil {
		return nil, err
	}

	sheets, err := provideSheetsClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newResources(svc, repo, nil, providers, sheets, nil, nil), nil
}

func logResources(cfg config.Config, res *Resources, logger *logging.Logger) {
	for _, p := range res.Providers {
		logger.Info("job provider initialized", "provider", p.Name())
	}
	if cfg.Indeed.Publisher == "" {
		logger.Warn("INDEED_PUBLISHER not set, indeed searches will fail")
	}
	if res.Neo4jClient != nil {
		logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	}
	if res.Tracker != nil {
		logger.Info("Redis discovery tracker initialized")
	}
}

type stubJobRepository struct{}

func (stubJobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	_ = ctx
	_ = jobs
	return nil
}

func (stubJobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	_ = ctx
	_ = ids
	return nil, nil
}
