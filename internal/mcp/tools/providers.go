package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain/job"
)

// JobProvidersParams takes no arguments
type JobProvidersParams struct{}

// ProviderInfo describes one configured provider
type ProviderInfo struct {
	Name           string   `json:"name" jsonschema:"Provider identifier"`
	ListingsPath   string   `json:"listings_path" jsonschema:"Response key holding the listings"`
	RequiredFields []string `json:"required_fields" jsonschema:"Listing fields the provider maps"`
}

// JobProvidersResult lists configured providers
type JobProvidersResult struct {
	Providers []ProviderInfo `json:"providers"`
}

// WithJobProviders registers the job_providers tool
func WithJobProviders(providers []job.Provider) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_providers",
			Description: "List configured job providers with the response fields each one maps",
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ JobProvidersParams) (*sdkmcp.CallToolResult, any, error) {
			result := describeProviders(providers)
			return textResult(formatProviders(result)), result, nil
		})
		reg.add("job_providers")
	}
}

func describeProviders(providers []job.Provider) JobProvidersResult {
	out := JobProvidersResult{Providers: make([]ProviderInfo, 0, len(providers))}
	for _, p := range providers {
		out.Providers = append(out.Providers, ProviderInfo{
			Name:           p.Name(),
			ListingsPath:   p.ListingsPath(),
			RequiredFields: p.RequiredFields(),
		})
	}
	return out
}

func formatProviders(result JobProvidersResult) string {
	if len(result.Providers) == 0 {
		return "[job_providers] No providers configured"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[job_providers] %d provider(s)", len(result.Providers))
	for _, p := range result.Providers {
		fmt.Fprintf(&b, "\n- %s (listings: %q): %s", p.Name, p.ListingsPath, strings.Join(p.RequiredFields, ", "))
	}
	return b.String()
}
