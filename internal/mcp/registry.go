package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/internal/mcp/tools"
	"github.com/honeycarbs/jobs-client/internal/scheduler"
	"github.com/honeycarbs/jobs-client/pkg/logging"
	n4j "github.com/honeycarbs/jobs-client/pkg/neo4j"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources holds everything the tools and background jobs depend on
type Resources struct {
	JobService   job.Service
	JobRepo      job.Repository
	Keywords     job.KeywordTagger
	Providers    []job.Provider
	SheetsClient tools.SheetsClient
	Neo4jClient  *n4j.Client
	Tracker      scheduler.Tracker
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ToolRegistry{logger: logger}
}

// RegisterAll registers every tool backed by res and returns their names
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) []string {
	opts := []tools.Option{
		tools.WithJobProviders(res.Providers),
	}

	if res.JobService != nil {
		opts = append(opts, tools.WithJobSearch(res.JobService))
	}

	if res.Keywords != nil {
		opts = append(opts, tools.WithPersistKeywords(res.Keywords))
	}

	if res.SheetsClient != nil {
		opts = append(opts, tools.WithSheetsExport(res.SheetsClient, res.JobRepo))
	}

	return tools.Register(server, r.logger.Named("tools"), opts...)
}
