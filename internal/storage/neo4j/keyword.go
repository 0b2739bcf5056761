package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
)

var _ job.KeywordTagger = (*JobRepository)(nil)

const tagKeywordsQuery = `
	UNWIND $records AS record
	MATCH (j:Job {id: record.jobId})
	WITH j, record
	UNWIND record.keywords AS keyword
	MERGE (k:Keyword {value: keyword.value})
	SET k.notes = coalesce(keyword.notes, k.notes)
	MERGE (j)-[rel:HAS_KEYWORD]->(k)
	SET rel.createdAt = coalesce(rel.createdAt, datetime()),
	    rel.source = coalesce(record.source, rel.source)
	WITH DISTINCT j
	RETURN count(j) AS tagged
`

var keywordSchema = []string{
	`CREATE CONSTRAINT keyword_value IF NOT EXISTS
	 FOR (k:Keyword) REQUIRE k.value IS UNIQUE`,
}

// TagKeywords merges Keyword nodes and links them to existing Job nodes
func (r *JobRepository) TagKeywords(ctx context.Context, records []domain.JobKeywords) (int, error) {
	params := keywordParams(records)
	if len(params) == 0 {
		return 0, nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	tagged, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, tagKeywordsQuery, map[string]any{"records": params})
		if err != nil {
			return nil, fmt.Errorf("failed to execute keyword tagging query: %w", err)
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		count, _ := record.Get("tagged")
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	n, _ := tagged.(int64)
	return int(n), nil
}

// keywordParams drops records without keywords. Empty notes and sources are
// sent as null so they never overwrite stored values.
func keywordParams(records []domain.JobKeywords) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if len(record.Keywords) == 0 {
			continue
		}

		keywords := make([]map[string]any, 0, len(record.Keywords))
		for _, kw := range record.Keywords {
			keywords = append(keywords, map[string]any{
				"value": kw.Value,
				"notes": nullable(kw.Notes),
			})
		}

		out = append(out, map[string]any{
			"jobId":    record.JobID.String(),
			"keywords": keywords,
			"source":   nullable(record.Source),
		})
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
