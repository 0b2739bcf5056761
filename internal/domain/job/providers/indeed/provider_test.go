package indeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/honeycarbs/jobs-client/internal/domain"
	jobdomain "github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/indeed"
)

type fakeClient struct {
	calls   int
	query   indeed.Query
	payload map[string]any
	err     error
}

func (f *fakeClient) Search(_ context.Context, q indeed.Query) (map[string]any, error) {
	f.calls++
	f.query = q
	return f.payload, f.err
}

func newTestProvider(t *testing.T, client searchClient, base indeed.Query) *Provider {
	t.Helper()
	p, err := NewProvider(client, base)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func sampleListing(i int) map[string]any {
	location := fmt.Sprintf("City%d, S%d", i, i)
	return map[string]any{
		"jobtitle":              fmt.Sprintf("Engineer %d", i),
		"company":               fmt.Sprintf("Company %d", i),
		"formattedLocation":     location,
		"formattedLocationFull": location + fmt.Sprintf(" 7870%d", i),
		"source":                "Indeed",
		"date":                  "Mon, 06 Jul 2015 12:00:00 GMT",
		"snippet":               fmt.Sprintf("snippet %d", i),
		"url":                   fmt.Sprintf("https://www.indeed.com/viewjob?jk=key%d", i),
		"jobkey":                fmt.Sprintf("key%d", i),
		"latitude":              30.26 + float64(i),
		"longitude":             -97.74,
		"onmousedown":           fmt.Sprintf("indeed_clk(this,'%d');", i),
	}
}

func TestNewProviderRequiresClient(t *testing.T) {
	if _, err := NewProvider(nil, indeed.Query{}); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestCreateJobRecord(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{})

	raw := jobdomain.RawListing{
		"jobtitle":              "Engineer",
		"company":               "Acme Corp",
		"formattedLocation":     "Austin, TX",
		"formattedLocationFull": "Austin, TX 78701",
		"snippet":               "Build <b>things</b>",
		"date":                  "Mon, 06 Jul 2015 12:00:00 GMT",
		"url":                   "https://www.indeed.com/viewjob?jk=abc123",
		"jobkey":                "abc123",
		"latitude":              30.2672,
		"longitude":             -97.7431,
		"onmousedown":           "indeed_clk(this,'');",
	}

	j := p.CreateJobRecord(raw)

	if j.Title != "Engineer" || j.Name != "Engineer" {
		t.Fatalf("unexpected title/name: %q / %q", j.Title, j.Name)
	}
	if j.Description != "Build <b>things</b>" {
		t.Fatalf("unexpected description: %q", j.Description)
	}
	if j.URL != "https://www.indeed.com/viewjob?jk=abc123" {
		t.Fatalf("unexpected url: %q", j.URL)
	}
	if j.ExternalID != "abc123" || j.Source != "indeed" {
		t.Fatalf("unexpected source/external id: %q / %q", j.Source, j.ExternalID)
	}
	if j.Location != "Austin, TX" {
		t.Fatalf("unexpected location: %q", j.Location)
	}
	if j.City != "Austin" || j.State != "TX" || j.PostalCode != "78701" {
		t.Fatalf("unexpected city/state/postal: %q / %q / %q", j.City, j.State, j.PostalCode)
	}
	if j.Company.Name != "Acme Corp" || j.Company.ID != "acme-corp" {
		t.Fatalf("unexpected company: %+v", j.Company)
	}
	if j.Latitude != 30.2672 || j.Longitude != -97.7431 {
		t.Fatalf("unexpected coordinates: %v, %v", j.Latitude, j.Longitude)
	}
	if j.JavascriptFunction != "indeed_clk(this,'');" {
		t.Fatalf("unexpected javascript function: %q", j.JavascriptFunction)
	}
	want := time.Date(2015, time.July, 6, 12, 0, 0, 0, time.UTC)
	if !j.PostedAt.Equal(want) {
		t.Fatalf("unexpected posted at: %v", j.PostedAt)
	}
	if j.ID != jobdomain.StableID("indeed", "abc123") {
		t.Fatalf("expected stable id, got %v", j.ID)
	}
}

func TestCreateJobRecordLocationParsing(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{})

	tests := []struct {
		name       string
		location   string
		full       string
		wantCity   string
		wantState  string
		wantPostal string
	}{
		{
			name:       "city state postal",
			location:   "Portland, OR",
			full:       "Portland, OR 97201",
			wantCity:   "Portland",
			wantState:  "OR",
			wantPostal: "97201",
		},
		{
			name:       "no comma",
			location:   "Remote",
			full:       "Remote",
			wantCity:   "Remote",
			wantPostal: "Remote",
		},
		{
			name:       "state only full location",
			location:   "Texas",
			full:       "Texas 73301",
			wantCity:   "Texas",
			wantPostal: "73301",
		},
		{
			name:       "missing postal keeps full string",
			location:   "Austin, TX",
			full:       "Austin, TX",
			wantCity:   "Austin",
			wantState:  "TX",
			wantPostal: "Austin, TX",
		},
		{
			name:       "multiple trailing tokens",
			location:   "Austin, TX",
			full:       "Austin, TX 78701 US",
			wantCity:   "Austin",
			wantState:  "TX",
			wantPostal: "78701 US",
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := p.CreateJobRecord(jobdomain.RawListing{
				"formattedLocation":     tt.location,
				"formattedLocationFull": tt.full,
			})
			if j.City != tt.wantCity {
				t.Errorf("city = %q, want %q", j.City, tt.wantCity)
			}
			if j.State != tt.wantState {
				t.Errorf("state = %q, want %q", j.State, tt.wantState)
			}
			if j.PostalCode != tt.wantPostal {
				t.Errorf("postal = %q, want %q", j.PostalCode, tt.wantPostal)
			}
		})
	}
}

func TestCreateJobRecordPermissive(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{})

	j := p.CreateJobRecord(jobdomain.RawListing{
		"jobtitle":  "Engineer",
		"date":      "not a date",
		"latitude":  "north",
		"longitude": "-97.5",
	})

	if !j.PostedAt.IsZero() {
		t.Fatalf("expected zero posted at, got %v", j.PostedAt)
	}
	if j.Latitude != 0 {
		t.Fatalf("expected zero latitude, got %v", j.Latitude)
	}
	if j.Longitude != -97.5 {
		t.Fatalf("expected numeric string longitude to parse, got %v", j.Longitude)
	}
	if j.ExternalID != "" || j.ID != (domain.JobID{}) {
		t.Fatalf("expected empty identity without jobkey, got %q / %v", j.ExternalID, j.ID)
	}
}

func TestParseDateShortForm(t *testing.T) {
	got := parseDate("2015-07-5")
	want := time.Date(2015, time.July, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parseDate = %v, want %v", got, want)
	}
}

func TestRequiredFields(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{})

	want := []string{
		"jobtitle", "company", "formattedLocation", "formattedLocationFull",
		"source", "date", "snippet", "url", "jobkey", "latitude", "longitude",
	}

	first := p.RequiredFields()
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("RequiredFields = %v", first)
	}

	first[0] = "mutated"
	if second := p.RequiredFields(); !reflect.DeepEqual(second, want) {
		t.Fatalf("RequiredFields changed between calls: %v", second)
	}
}

func TestListingsPath(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{})
	if got := p.ListingsPath(); got != "results" {
		t.Fatalf("ListingsPath = %q", got)
	}
}

func TestFetchJobsWithoutPublisher(t *testing.T) {
	client := &fakeClient{}
	p := newTestProvider(t, client, indeed.Query{})

	_, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{})
	if !errors.Is(err, jobdomain.ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	var missing *indeed.MissingParameterError
	if !errors.As(err, &missing) || len(missing.Params) != 1 || missing.Params[0] != "publisher" {
		t.Fatalf("expected missing publisher, got %v", err)
	}

	if client.calls != 0 {
		t.Fatalf("expected no API call, got %d", client.calls)
	}
}

func TestFetchJobsMapsListingsAndMetadata(t *testing.T) {
	results := []any{sampleListing(1), sampleListing(2), sampleListing(3)}
	client := &fakeClient{payload: map[string]any{
		"version":      2.0,
		"query":        "engineering",
		"totalResults": 3.0,
		"results":      results,
	}}
	p := newTestProvider(t, client, indeed.Query{Publisher: "12345667", IncludeLatLong: true})

	res, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{Location: "Austin, TX", Limit: 25})
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}

	if len(res.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(res.Jobs))
	}
	for i, j := range res.Jobs {
		n := i + 1
		if j.ExternalID != fmt.Sprintf("key%d", n) {
			t.Fatalf("job %d out of order: %q", i, j.ExternalID)
		}
		if j.Query != "engineering" || j.Source != "indeed" {
			t.Fatalf("job %d missing query/source: %q / %q", i, j.Query, j.Source)
		}
		if j.PostalCode != fmt.Sprintf("7870%d", n) {
			t.Fatalf("job %d postal = %q", i, j.PostalCode)
		}
	}

	if _, ok := res.Metadata["results"]; ok {
		t.Fatal("metadata still contains results")
	}
	if res.Metadata["totalResults"] != 3.0 || res.Metadata["query"] != "engineering" {
		t.Fatalf("unexpected metadata: %v", res.Metadata)
	}

	if client.query.Location != "Austin, TX" || client.query.Limit != 25 || client.query.Publisher != "12345667" {
		t.Fatalf("unexpected query sent: %+v", client.query)
	}
}

func TestFetchJobsNonObjectPayload(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{Publisher: "12345667"})

	res, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{})
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	if len(res.Jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(res.Jobs))
	}
}

func TestFetchJobsPropagatesClientError(t *testing.T) {
	want := errors.New("boom")
	p := newTestProvider(t, &fakeClient{err: want}, indeed.Query{Publisher: "12345667"})

	_, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{})
	if !errors.Is(err, want) {
		t.Fatalf("expected client error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "indeed provider: search: ") {
		t.Fatalf("expected provider prefix, got %q", err.Error())
	}
}

func TestQueryAppliesFilters(t *testing.T) {
	p := newTestProvider(t, &fakeClient{}, indeed.Query{Publisher: "pub", Country: "us"})
	remote := true

	q := p.Query("golang", domain.JobSearchFilters{
		Remote:   &remote,
		Skills:   []string{"kubernetes"},
		Radius:   50,
		DaysBack: 7,
		Start:    10,
	})

	if q.Keyword != "golang kubernetes" {
		t.Fatalf("keyword = %q", q.Keyword)
	}
	if q.Location != "remote" {
		t.Fatalf("location = %q", q.Location)
	}
	if q.Radius != 50 || q.DaysBack != 7 || q.Start != 10 {
		t.Fatalf("unexpected paging/radius: %+v", q)
	}
	if q.Publisher != "pub" || q.Country != "us" {
		t.Fatalf("base parameters lost: %+v", q)
	}
}

func TestFetchJobsOverHTTP(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.URL.Query().Get("publisher"); got != "12345667" {
			t.Errorf("publisher = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalResults": 2,
			"results":      []any{sampleListing(1), sampleListing(2)},
		})
	}))
	defer srv.Close()

	client, err := indeed.NewClient(indeed.Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	p := newTestProvider(t, client, indeed.Query{Publisher: "12345667", Version: "2"})

	res, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{})
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 request, got %d", hits)
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(res.Jobs))
	}
	if res.Jobs[0].City != "City1" || res.Jobs[0].State != "S1" {
		t.Fatalf("unexpected location split: %+v", res.Jobs[0])
	}
	if _, ok := res.Metadata["totalResults"]; !ok {
		t.Fatalf("metadata missing totalResults: %v", res.Metadata)
	}
}

func TestFetchJobsOverHTTPWithoutPublisher(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client, err := indeed.NewClient(indeed.Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	p := newTestProvider(t, client, indeed.Query{})

	if _, err := p.FetchJobs(context.Background(), "engineering", domain.JobSearchFilters{}); !errors.Is(err, jobdomain.ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no HTTP request, got %d", hits)
	}
}
