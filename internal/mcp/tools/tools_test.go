package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

type fakeService struct {
	query   string
	filters domain.JobSearchFilters
	result  domain.JobSearchResult
	err     error
}

func (f *fakeService) Search(_ context.Context, query string, filters domain.JobSearchFilters) (domain.JobSearchResult, error) {
	f.query, f.filters = query, filters
	return f.result, f.err
}

type fakeProvider struct{ name string }

func (p fakeProvider) Name() string             { return p.name }
func (p fakeProvider) ListingsPath() string     { return "results" }
func (p fakeProvider) RequiredFields() []string { return []string{"jobtitle", "url"} }
func (p fakeProvider) FetchJobs(context.Context, string, domain.JobSearchFilters) (job.FetchResult, error) {
	return job.FetchResult{}, nil
}
func (p fakeProvider) CreateJobRecord(job.RawListing) domain.Job { return domain.Job{} }

type fakeFinder struct {
	jobs []domain.Job
	ids  []domain.JobID
}

func (f *fakeFinder) FindByIDs(_ context.Context, ids []domain.JobID) ([]domain.Job, error) {
	f.ids = ids
	return f.jobs, nil
}

type fakeSheets struct {
	params SheetsExportParams
}

func (f *fakeSheets) Export(_ context.Context, params SheetsExportParams) (SheetsExportResult, error) {
	f.params = params
	return SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		WrittenRows:   len(params.Rows),
	}, nil
}

type fakeTagger struct {
	records []domain.JobKeywords
	tagged  int
	err     error
}

func (f *fakeTagger) TagKeywords(_ context.Context, records []domain.JobKeywords) (int, error) {
	f.records = records
	return f.tagged, f.err
}

func TestRegister(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)

	names := Register(server, nil,
		WithJobSearch(&fakeService{}),
		WithJobProviders(nil),
		nil,
		WithPersistKeywords(&fakeTagger{}),
		WithSheetsExport(&fakeSheets{}, &fakeFinder{}),
	)

	want := []string{"job_search", "job_providers", "persist_keywords", "sheets_export"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("Register = %v, want %v", names, want)
	}
}

func TestJobSearchHandle(t *testing.T) {
	remote := true
	svc := &fakeService{result: domain.JobSearchResult{
		Jobs: []domain.JobSummary{{
			Title:    "Go Engineer",
			Company:  "Acme",
			Location: "Austin, TX",
			Source:   "indeed",
			URL:      "https://example.com/1",
		}},
		Sources: []domain.SourceSummary{
			{Name: "indeed", Count: 1},
			{Name: "adzuna", Error: "boom"},
		},
		SourceCount: 1,
	}}
	tool := jobSearchTool{service: svc, logger: logging.Nop()}

	res, out, err := tool.handle(context.Background(), nil, JobSearchParams{
		Query:    "golang",
		Location: "Austin, TX",
		Remote:   &remote,
		Skills:   []string{"kubernetes"},
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if svc.query != "golang" || svc.filters.Location != "Austin, TX" || svc.filters.Limit != 5 || svc.filters.Remote == nil {
		t.Fatalf("filters not forwarded: %q %+v", svc.query, svc.filters)
	}

	result, ok := out.(JobSearchResult)
	if !ok || len(result.Jobs) != 1 || result.SourceCount != 1 {
		t.Fatalf("unexpected structured result: %#v", out)
	}

	text := res.Content[0].(*sdkmcp.TextContent).Text
	for _, want := range []string{"Found 1 job(s) from 1 source(s)", "! adzuna: boom", "Go Engineer @ Acme"} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q missing %q", text, want)
		}
	}
}

func TestJobSearchHandleErrors(t *testing.T) {
	tool := jobSearchTool{service: &fakeService{}, logger: logging.Nop()}
	if _, _, err := tool.handle(context.Background(), nil, JobSearchParams{Query: "  "}); err == nil {
		t.Fatal("expected error for blank query")
	}

	tool = jobSearchTool{service: &fakeService{err: errors.New("all providers failed")}, logger: logging.Nop()}
	if _, _, err := tool.handle(context.Background(), nil, JobSearchParams{Query: "golang"}); err == nil {
		t.Fatal("expected service error")
	}

	tool = jobSearchTool{logger: logging.Nop()}
	if _, _, err := tool.handle(context.Background(), nil, JobSearchParams{Query: "golang"}); err == nil {
		t.Fatal("expected error without service")
	}
}

func TestDescribeProviders(t *testing.T) {
	result := describeProviders([]job.Provider{fakeProvider{name: "indeed"}, fakeProvider{name: "adzuna"}})
	if len(result.Providers) != 2 || result.Providers[0].Name != "indeed" || result.Providers[1].ListingsPath != "results" {
		t.Fatalf("unexpected providers: %+v", result)
	}

	text := formatProviders(result)
	if !strings.Contains(text, `indeed (listings: "results"): jobtitle, url`) {
		t.Fatalf("unexpected text: %q", text)
	}

	if got := formatProviders(describeProviders(nil)); !strings.Contains(got, "No providers") {
		t.Fatalf("unexpected empty text: %q", got)
	}
}

func TestSheetsExportRehydratesJobs(t *testing.T) {
	id := job.StableID("indeed", "abc")
	finder := &fakeFinder{jobs: []domain.Job{{
		ID:         id,
		Title:      "Go Engineer",
		Company:    domain.CompanyRef{Name: "Acme"},
		City:       "Austin",
		State:      "TX",
		PostalCode: "78701",
		Source:     "indeed",
		FetchedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}}
	client := &fakeSheets{}
	tool := sheetsExportTool{client: client, finder: finder, logger: logging.Nop()}

	var params SheetsExportParams
	params.Sheet.SpreadsheetID = "sheet-1"
	params.Upsert = true
	params.JobIDs = []string{id.String()}
	params.Rows = []SheetRow{{Title: "manual"}}

	_, out, err := tool.handle(context.Background(), nil, params)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(finder.ids) != 1 || finder.ids[0] != id {
		t.Fatalf("unexpected lookup: %v", finder.ids)
	}
	rows := client.params.Rows
	if len(rows) != 2 || rows[1].Company != "Acme" || rows[1].PostalCode != "78701" || rows[1].UpdatedAt != "2024-03-01T12:00:00Z" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if res := out.(SheetsExportResult); res.Mode != "upsert" || res.WrittenRows != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSheetsExportValidation(t *testing.T) {
	tool := sheetsExportTool{client: &fakeSheets{}, finder: &fakeFinder{}, logger: logging.Nop()}

	if _, _, err := tool.handle(context.Background(), nil, SheetsExportParams{}); err == nil {
		t.Fatal("expected error without spreadsheet id")
	}

	var params SheetsExportParams
	params.Sheet.SpreadsheetID = "sheet-1"
	params.JobIDs = []string{"not-a-uuid"}
	if _, _, err := tool.handle(context.Background(), nil, params); err == nil {
		t.Fatal("expected error for invalid job id")
	}

	tool.finder = nil
	params.JobIDs = []string{job.StableID("indeed", "abc").String()}
	if _, _, err := tool.handle(context.Background(), nil, params); err == nil {
		t.Fatal("expected error without repository")
	}
}

func TestPersistKeywordsNormalizes(t *testing.T) {
	id := job.StableID("indeed", "abc")
	tagger := &fakeTagger{tagged: 1}
	tool := persistKeywordsTool{tagger: tagger, logger: logging.Nop()}

	params := PersistKeywordsParams{Records: []KeywordRecord{
		{
			JobID: " " + id.String() + " ",
			Keywords: []KeywordEntry{
				{Value: " Golang "},
				{Value: "golang", Notes: "duplicate"},
				{Value: "  "},
				{Value: "Kubernetes", Notes: "nice to have"},
			},
			Source: "assistant",
		},
		{JobID: job.StableID("indeed", "def").String(), Keywords: []KeywordEntry{{Value: ""}}},
	}}

	_, out, err := tool.handle(context.Background(), nil, params)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(tagger.records) != 1 {
		t.Fatalf("expected records without keywords dropped, got %+v", tagger.records)
	}
	rec := tagger.records[0]
	if rec.JobID != id || rec.Source != "assistant" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	want := []domain.Keyword{{Value: "golang"}, {Value: "kubernetes", Notes: "nice to have"}}
	if len(rec.Keywords) != len(want) || rec.Keywords[0] != want[0] || rec.Keywords[1] != want[1] {
		t.Fatalf("keywords = %+v, want %+v", rec.Keywords, want)
	}

	res := out.(PersistKeywordsResult)
	if res.SavedRecords != 1 || res.TaggedJobs != 1 || len(res.JobIDs) != 1 || res.JobIDs[0] != id.String() {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPersistKeywordsErrors(t *testing.T) {
	tool := persistKeywordsTool{tagger: &fakeTagger{}, logger: logging.Nop()}

	_, out, err := tool.handle(context.Background(), nil, PersistKeywordsParams{})
	if err != nil {
		t.Fatalf("empty request: %v", err)
	}
	if res := out.(PersistKeywordsResult); res.Message != "no records provided" {
		t.Fatalf("unexpected result: %+v", res)
	}

	bad := PersistKeywordsParams{Records: []KeywordRecord{{JobID: "nope", Keywords: []KeywordEntry{{Value: "go"}}}}}
	if _, _, err := tool.handle(context.Background(), nil, bad); err == nil {
		t.Fatal("expected error for invalid job id")
	}

	valid := PersistKeywordsParams{Records: []KeywordRecord{{
		JobID:    job.StableID("indeed", "abc").String(),
		Keywords: []KeywordEntry{{Value: "go"}},
	}}}

	failing := persistKeywordsTool{tagger: &fakeTagger{err: errors.New("neo4j down")}, logger: logging.Nop()}
	if _, _, err := failing.handle(context.Background(), nil, valid); err == nil || !strings.Contains(err.Error(), "neo4j down") {
		t.Fatalf("expected storage error, got %v", err)
	}

	unconfigured := persistKeywordsTool{logger: logging.Nop()}
	if _, _, err := unconfigured.handle(context.Background(), nil, valid); err == nil {
		t.Fatal("expected error without repository")
	}
}
