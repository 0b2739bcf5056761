package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

// KeywordEntry represents a single extracted keyword
type KeywordEntry struct {
	Value string `json:"value" jsonschema:"Keyword text"`
	Notes string `json:"notes,omitempty" jsonschema:"Free-form annotation from the agent"`
}

// KeywordRecord captures the keyword set for a given job
type KeywordRecord struct {
	JobID    string         `json:"job_id" jsonschema:"Job id returned by job_search"`
	Keywords []KeywordEntry `json:"keywords" jsonschema:"Extracted keyword list"`
	Source   string         `json:"source,omitempty" jsonschema:"Optional agent/run label"`
}

// PersistKeywordsParams defines the arguments for the persist_keywords tool
type PersistKeywordsParams struct {
	Records []KeywordRecord `json:"records" jsonschema:"Keyword payloads to persist"`
}

// PersistKeywordsResult represents a summary of the persist operation
type PersistKeywordsResult struct {
	JobIDs       []string `json:"job_ids" jsonschema:"Job identifiers that were processed"`
	SavedRecords int      `json:"saved_records" jsonschema:"Number of keyword records sent to storage"`
	TaggedJobs   int      `json:"tagged_jobs" jsonschema:"Number of stored jobs that matched"`
	Message      string   `json:"message,omitempty" jsonschema:"Optional status message"`
}

type persistKeywordsTool struct {
	tagger job.KeywordTagger
	logger *logging.Logger
}

// WithPersistKeywords registers the persist_keywords tool
func WithPersistKeywords(tagger job.KeywordTagger) Option {
	return func(reg *registry) {
		handler := persistKeywordsTool{tagger: tagger, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "persist_keywords",
			Description: "Store agent-extracted keywords against stored job postings",
		}, handler.handle)
		reg.add("persist_keywords")
	}
}

func (t persistKeywordsTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params PersistKeywordsParams) (*sdkmcp.CallToolResult, any, error) {
	result := PersistKeywordsResult{JobIDs: []string{}}
	if len(params.Records) == 0 {
		result.Message = "no records provided"
		t.logger.Warn("persist_keywords: no records provided")
		return textResult(result.Message), result, nil
	}

	if t.tagger == nil {
		return nil, nil, fmt.Errorf("keyword repository not configured")
	}

	records, err := keywordRecords(params.Records)
	if err != nil {
		return nil, nil, err
	}

	t.logger.Info("persist_keywords request", "records_count", len(records))

	tagged, err := t.tagger.TagKeywords(ctx, records)
	if err != nil {
		t.logger.Error("persist_keywords: failed to persist", "err", err, "records_count", len(records))
		return nil, nil, fmt.Errorf("failed to persist keywords: %w", err)
	}

	result.SavedRecords = len(records)
	result.TaggedJobs = tagged
	for _, r := range records {
		result.JobIDs = append(result.JobIDs, r.JobID.String())
	}
	result.Message = fmt.Sprintf("tagged %d of %d job(s)", tagged, len(records))

	msg := fmt.Sprintf("[persist_keywords] Persisted %d record(s), %d job(s) matched", result.SavedRecords, result.TaggedJobs)
	return textResult(msg), result, nil
}

// keywordRecords validates job ids and normalizes keywords: trimmed,
// lower-cased and deduplicated per job. Records left without keywords are dropped.
func keywordRecords(in []KeywordRecord) ([]domain.JobKeywords, error) {
	out := make([]domain.JobKeywords, 0, len(in))
	for _, r := range in {
		id, err := uuid.Parse(strings.TrimSpace(r.JobID))
		if err != nil {
			return nil, fmt.Errorf("invalid job id %q: %w", r.JobID, err)
		}

		seen := make(map[string]struct{}, len(r.Keywords))
		keywords := make([]domain.Keyword, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			value := strings.ToLower(strings.TrimSpace(kw.Value))
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			keywords = append(keywords, domain.Keyword{Value: value, Notes: strings.TrimSpace(kw.Notes)})
		}
		if len(keywords) == 0 {
			continue
		}

		out = append(out, domain.JobKeywords{
			JobID:    id,
			Keywords: keywords,
			Source:   strings.TrimSpace(r.Source),
		})
	}
	return out, nil
}
