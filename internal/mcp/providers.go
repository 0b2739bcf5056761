package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobs-client/internal/config"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/jobs-client/internal/domain/job/providers/adzuna"
	indeedProvider "github.com/honeycarbs/jobs-client/internal/domain/job/providers/indeed"
	"github.com/honeycarbs/jobs-client/internal/mcp/tools"
	"github.com/honeycarbs/jobs-client/internal/scheduler"
	storage "github.com/honeycarbs/jobs-client/internal/storage/neo4j"
	"github.com/honeycarbs/jobs-client/pkg/adzuna"
	"github.com/honeycarbs/jobs-client/pkg/indeed"
	n4j "github.com/honeycarbs/jobs-client/pkg/neo4j"
	"github.com/honeycarbs/jobs-client/pkg/redis"
	sheetsclient "github.com/honeycarbs/jobs-client/pkg/sheets"
)

// provideNeo4jConfig extracts Neo4j config from main config
func provideNeo4jConfig(cfg config.Config) n4j.Config {
	return n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	}
}

// provideNeo4jClient connects to Neo4j and closes the driver on cleanup
func provideNeo4jClient(cfg n4j.Config) (*n4j.Client, func(), error) {
	client, err := n4j.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close(context.Background()) }, nil
}

// provideJobRepository builds the Neo4j job store and ensures its schema
func provideJobRepository(ctx context.Context, client *n4j.Client) (*storage.JobRepository, error) {
	repo := storage.NewJobRepository(client)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func provideIndeedClient(cfg config.Config) (*indeed.Client, error) {
	return indeed.NewClient(indeed.Config{BaseURL: cfg.Indeed.BaseURL})
}

// provideIndeedProvider builds the Indeed provider. It is registered even
// without a publisher key so searches report the missing parameter.
func provideIndeedProvider(client *indeed.Client, cfg config.Config) (*indeedProvider.Provider, error) {
	return indeedProvider.NewProvider(client, baseIndeedQuery(cfg))
}

func baseIndeedQuery(cfg config.Config) indeed.Query {
	return indeed.Query{
		Publisher:        cfg.Indeed.Publisher,
		Version:          cfg.Indeed.Version,
		Country:          cfg.Indeed.Country,
		Channel:          cfg.Indeed.Channel,
		Limit:            cfg.Indeed.Limit,
		IncludeLatLong:   true,
		FilterDuplicates: true,
	}
}

// provideAdzunaProvider returns nil when Adzuna credentials are not configured
func provideAdzunaProvider(cfg config.Config) (*adzunaProvider.Provider, error) {
	if cfg.Adzuna.AppID == "" || cfg.Adzuna.AppKey == "" {
		return nil, nil
	}

	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   cfg.Adzuna.AppID,
		AppKey:  cfg.Adzuna.AppKey,
		Country: cfg.Adzuna.Country,
	})
	if err != nil {
		return nil, err
	}
	return adzunaProvider.NewProvider(client)
}

// provideJobProviders lists configured providers, Indeed first
func provideJobProviders(indeedP *indeedProvider.Provider, adzunaP *adzunaProvider.Provider) []job.Provider {
	providers := make([]job.Provider, 0, 2)
	if indeedP != nil {
		providers = append(providers, indeedP)
	}
	if adzunaP != nil {
		providers = append(providers, adzunaP)
	}
	return providers
}

// provideSheetsClient returns an adapter that reports a configuration error
// on export when no credentials are set
func provideSheetsClient(ctx context.Context, cfg config.Config) (tools.SheetsClient, error) {
	if cfg.Sheets.CredentialsPath == "" {
		return newSheetsClientAdapter(nil), nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{
		CredentialsPath: cfg.Sheets.CredentialsPath,
	})
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return newSheetsClientAdapter(client), nil
}

// provideTracker connects to Redis when REDIS_URL is set. A nil tracker makes
// the scheduler count every listing as new.
func provideTracker(cfg config.Config) (scheduler.Tracker, func(), error) {
	if cfg.RedisURL == "" {
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return scheduler.NewRedisTracker(client), func() { _ = client.Close() }, nil
}

// newResources creates Resources struct
func newResources(
	jobService job.Service,
	jobRepo job.Repository,
	keywords job.KeywordTagger,
	providers []job.Provider,
	sheetsClient tools.SheetsClient,
	neo4jClient *n4j.Client,
	tracker scheduler.Tracker,
) *Resources {
	return &Resources{
		JobService:   jobService,
		JobRepo:      jobRepo,
		Keywords:     keywords,
		Providers:    providers,
		SheetsClient: sheetsClient,
		Neo4jClient:  neo4jClient,
		Tracker:      tracker,
	}
}
