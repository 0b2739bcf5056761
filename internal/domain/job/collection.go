package job

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobs-client/internal/domain"
)

// ErrMissingParameter is returned by providers when a required query
// parameter (usually the API key) is not set. No request is made in that case.
var ErrMissingParameter = errors.New("all required parameters for this provider must be set")

// Listings extracts the listing array stored under path. Entries that are not
// objects are skipped; a missing or non-array value yields nil.
func Listings(payload map[string]any, path string) []RawListing {
	items, ok := payload[path].([]any)
	if !ok {
		return nil
	}

	out := make([]RawListing, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, RawListing(obj))
		}
	}
	return out
}

// Metadata returns a copy of payload without the listing array under path.
// The input map is not modified.
func Metadata(payload map[string]any, path string) map[string]any {
	meta := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == path {
			continue
		}
		meta[k] = v
	}
	return meta
}

// Collect maps every listing of payload through p and stamps each job with
// the search query and, when the mapper left it empty, the provider name.
func Collect(p Provider, payload map[string]any, query string) FetchResult {
	path := p.ListingsPath()
	listings := Listings(payload, path)

	jobs := make([]domain.Job, 0, len(listings))
	for _, raw := range listings {
		j := p.CreateJobRecord(raw)
		j.Query = query
		if j.Source == "" {
			j.Source = p.Name()
		}
		jobs = append(jobs, j)
	}

	return FetchResult{
		Jobs:     jobs,
		Metadata: Metadata(payload, path),
	}
}

// StableID derives a deterministic job ID from the provider and its listing
// key so repeated fetches of the same posting map onto the same record.
func StableID(source, externalID string) domain.JobID {
	if externalID == "" {
		return uuid.Nil
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+":"+externalID))
}

// SplitLocation splits "<city>, <state>" on the first comma. A location
// without a comma is returned whole as the city; empty parts stay empty.
func SplitLocation(location string) (city, state string) {
	parts := strings.SplitN(location, ",", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// CompanySlug builds a company identifier from its display name
func CompanySlug(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
