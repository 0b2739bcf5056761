package job

import (
	"context"

	"github.com/honeycarbs/jobs-client/internal/domain"
)

// Finder loads stored jobs. Unknown IDs are skipped, not reported.
type Finder interface {
	FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}

// Repository stores normalized jobs keyed by Source + ExternalID, so
// repeated searches update a posting in place
type Repository interface {
	UpsertJobs(ctx context.Context, jobs []domain.Job) error
	Finder
}

// KeywordTagger links keywords to stored jobs and reports how many jobs
// matched. Records for unknown jobs are ignored.
type KeywordTagger interface {
	TagKeywords(ctx context.Context, records []domain.JobKeywords) (int, error)
}
