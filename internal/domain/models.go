package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a job
type JobID = uuid.UUID

// CompanyRef references a company
type CompanyRef struct {
	ID   string
	Name string
}

// Job is the normalized job posting entity
type Job struct {
	ID          JobID
	Title       string
	Name        string
	Company     CompanyRef
	Description string
	URL         string

	Source     string
	ExternalID string
	Query      string

	// Location is the provider's free-text location, City/State/PostalCode
	// are parsed out of it and may be empty.
	Location   string
	City       string
	State      string
	PostalCode string
	Latitude   float64
	Longitude  float64
	Remote     bool

	MinimumSalary float64
	MaximumSalary float64

	// JavascriptFunction is the raw click handler fragment some providers ship
	// alongside the listing URL.
	JavascriptFunction string

	PostedAt  time.Time
	FetchedAt time.Time
}

// Keyword is a tag an agent extracted from a posting
type Keyword struct {
	Value string
	Notes string
}

// JobKeywords attaches keywords to a stored job
type JobKeywords struct {
	JobID    JobID
	Keywords []Keyword
	// Source labels the agent or run that produced the keywords
	Source string
}

// JobSearchFilters describe allowed job query filters
type JobSearchFilters struct {
	Location string
	Remote   *bool
	Skills   []string
	Radius   int
	DaysBack int
	Start    int
	Limit    int
}

// JobSummary is the response-friendly job view
type JobSummary struct {
	ID         JobID     `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Remote     bool      `json:"remote"`
	URL        string    `json:"url"`
	Source     string    `json:"source"`
	ExternalID string    `json:"external_id,omitempty"`
	PostedAt   time.Time `json:"posted_at,omitempty"`
}

// SourceSummary reports what a single provider returned during a search
type SourceSummary struct {
	Name     string         `json:"name"`
	Count    int            `json:"count"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// JobSearchResult wraps job search output
type JobSearchResult struct {
	Jobs        []JobSummary
	Sources     []SourceSummary
	FetchedAt   time.Time
	SourceCount int
}

// Summarize builds the response view of a job
func (j Job) Summarize() JobSummary {
	return JobSummary{
		ID:         j.ID,
		Title:      j.Title,
		Company:    j.Company.Name,
		Location:   j.Location,
		City:       j.City,
		State:      j.State,
		PostalCode: j.PostalCode,
		Remote:     j.Remote,
		URL:        j.URL,
		Source:     j.Source,
		ExternalID: j.ExternalID,
		PostedAt:   j.PostedAt,
	}
}
