package neo4j

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobs-client/pkg/neo4j"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

const upsertJobsQuery = `
	UNWIND $jobs AS job
	MERGE (j:Job {source: job.source, externalId: job.externalId})
	SET j.id = job.id,
	    j.title = job.title,
	    j.name = job.name,
	    j.query = job.query,
	    j.location = job.location,
	    j.city = job.city,
	    j.state = job.state,
	    j.postalCode = job.postalCode,
	    j.latitude = job.latitude,
	    j.longitude = job.longitude,
	    j.remote = job.remote,
	    j.url = job.url,
	    j.javascriptFunction = job.javascriptFunction,
	    j.minimumSalary = job.minimumSalary,
	    j.maximumSalary = job.maximumSalary,
	    j.postedAt = datetime({epochMillis: job.postedAt}),
	    j.description = job.description,
	    j.fetchedAt = datetime({epochMillis: job.fetchedAt})
	WITH j, job
	WHERE job.company.id <> ""
	MERGE (c:Company {id: job.company.id})
	SET c.name = job.company.name
	MERGE (j)-[:POSTED_BY]->(c)
`

var jobSchema = []string{
	`CREATE CONSTRAINT job_source_external_id IF NOT EXISTS
	 FOR (j:Job) REQUIRE (j.source, j.externalId) IS UNIQUE`,
	`CREATE INDEX job_id IF NOT EXISTS FOR (j:Job) ON (j.id)`,
	`CREATE CONSTRAINT company_id IF NOT EXISTS
	 FOR (c:Company) REQUIRE c.id IS UNIQUE`,
}

const findJobsByIDQuery = `
	MATCH (j:Job)
	WHERE j.id IN $ids
	OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
	RETURN j, collect(DISTINCT c) as companies
`

// JobRepository implements job.Repository with Neo4j
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

// EnsureSchema creates the constraints and indexes the queries rely on
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	return r.client.EnsureSchema(ctx, slices.Concat(jobSchema, keywordSchema)...)
}

// UpsertJobs merges jobs on (source, externalId) and links their company
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	jobsData := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		jobsData = append(jobsData, jobParams(j))
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertJobsQuery, map[string]any{"jobs": jobsData})
		if err != nil {
			return nil, fmt.Errorf("failed to execute job upsert query: %w", err)
		}
		return result.Consume(ctx)
	})

	return err
}

// FindByIDs loads jobs by ID
func (r *JobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, findJobsByIDQuery, map[string]any{"ids": idStrings})
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records, _ := result.([]*neo4j.Record)
	jobs := make([]domain.Job, 0, len(records))

	for _, record := range records {
		jobVal, ok := record.Get("j")
		if !ok {
			continue
		}
		jobNode, ok := jobVal.(neo4j.Node)
		if !ok {
			continue
		}

		j, ok := jobFromProps(jobNode.Props)
		if !ok {
			continue
		}

		if companiesVal, ok := record.Get("companies"); ok {
			if companies, ok := companiesVal.([]any); ok && len(companies) > 0 {
				if companyNode, ok := companies[0].(neo4j.Node); ok {
					j.Company = domain.CompanyRef{
						ID:   stringProp(companyNode.Props, "id"),
						Name: stringProp(companyNode.Props, "name"),
					}
				}
			}
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}

func jobParams(j domain.Job) map[string]any {
	return map[string]any{
		"id":                 j.ID.String(),
		"title":              j.Title,
		"name":               j.Name,
		"query":              j.Query,
		"company":            map[string]any{"id": j.Company.ID, "name": j.Company.Name},
		"location":           j.Location,
		"city":               j.City,
		"state":              j.State,
		"postalCode":         j.PostalCode,
		"latitude":           j.Latitude,
		"longitude":          j.Longitude,
		"remote":             j.Remote,
		"url":                j.URL,
		"javascriptFunction": j.JavascriptFunction,
		"minimumSalary":      j.MinimumSalary,
		"maximumSalary":      j.MaximumSalary,
		"source":             j.Source,
		"externalId":         j.ExternalID,
		"postedAt":           j.PostedAt.UnixMilli(),
		"description":        j.Description,
		"fetchedAt":          j.FetchedAt.UnixMilli(),
	}
}

func jobFromProps(props map[string]any) (domain.Job, bool) {
	jobID, err := uuid.Parse(stringProp(props, "id"))
	if err != nil {
		return domain.Job{}, false
	}

	return domain.Job{
		ID:                 jobID,
		Title:              stringProp(props, "title"),
		Name:               stringProp(props, "name"),
		Query:              stringProp(props, "query"),
		Location:           stringProp(props, "location"),
		City:               stringProp(props, "city"),
		State:              stringProp(props, "state"),
		PostalCode:         stringProp(props, "postalCode"),
		Latitude:           floatProp(props, "latitude"),
		Longitude:          floatProp(props, "longitude"),
		Remote:             boolProp(props, "remote"),
		URL:                stringProp(props, "url"),
		JavascriptFunction: stringProp(props, "javascriptFunction"),
		MinimumSalary:      floatProp(props, "minimumSalary"),
		MaximumSalary:      floatProp(props, "maximumSalary"),
		Source:             stringProp(props, "source"),
		ExternalID:         stringProp(props, "externalId"),
		Description:        stringProp(props, "description"),
		PostedAt:           timeProp(props, "postedAt"),
		FetchedAt:          timeProp(props, "fetchedAt"),
	}, true
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func floatProp(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func boolProp(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

func timeProp(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v
	case neo4j.LocalDateTime:
		return v.Time()
	default:
		return time.Time{}
	}
}
