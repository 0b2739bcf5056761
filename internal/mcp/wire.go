//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobs-client/internal/config"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	storage "github.com/honeycarbs/jobs-client/internal/storage/neo4j"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config) (*Resources, func(), error) {
	wire.Build(
		// Infrastructure - Neo4j
		provideNeo4jConfig,
		provideNeo4jClient,

		// Repositories
		provideJobRepository,
		wire.Bind(new(job.Repository), new(*storage.JobRepository)),
		wire.Bind(new(job.KeywordTagger), new(*storage.JobRepository)),

		// Providers
		provideIndeedClient,
		provideIndeedProvider,
		provideAdzunaProvider,
		provideJobProviders,

		// Services
		job.NewServiceWithDeps,

		// Tool resources
		provideSheetsClient,
		provideTracker,
		newResources,
	)

	return nil, nil, nil
}
