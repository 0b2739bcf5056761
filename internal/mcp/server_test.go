package mcp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/honeycarbs/jobs-client/internal/config"
	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

func TestFallbackResources(t *testing.T) {
	var cfg config.Config
	cfg.Indeed.Publisher = "12345667"

	res, err := fallbackResources(context.Background(), cfg)
	if err != nil {
		t.Fatalf("fallbackResources: %v", err)
	}
	if len(res.Providers) != 1 || res.Providers[0].Name() != "indeed" {
		t.Fatalf("expected only the indeed provider, got %d", len(res.Providers))
	}
	if res.JobService == nil || res.SheetsClient == nil || res.JobRepo == nil {
		t.Fatalf("expected service, repo and sheets client, got %+v", res)
	}
	if res.Neo4jClient != nil || res.Tracker != nil || res.Keywords != nil {
		t.Fatal("fallback must not hold storage clients")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	var cfg config.Config
	cfg.Host, cfg.Port = "127.0.0.1", "0"

	res, err := fallbackResources(context.Background(), cfg)
	if err != nil {
		t.Fatalf("fallbackResources: %v", err)
	}

	srv := NewServer(logging.Nop(), cfg, res)

	for _, name := range []string{"job_providers", "job_search", "sheets_export"} {
		if !slices.Contains(srv.Tools(), name) {
			t.Errorf("tool %q not registered: %v", name, srv.Tools())
		}
	}
}

type noopTagger struct{}

func (noopTagger) TagKeywords(context.Context, []domain.JobKeywords) (int, error) { return 0, nil }

func TestNewServerRegistersKeywordTool(t *testing.T) {
	cfg := config.Config{Host: "127.0.0.1", Port: "0"}

	without := NewServer(logging.Nop(), cfg, &Resources{})
	if slices.Contains(without.Tools(), "persist_keywords") {
		t.Fatalf("persist_keywords registered without storage: %v", without.Tools())
	}

	with := NewServer(logging.Nop(), cfg, &Resources{Keywords: noopTagger{}})
	if !slices.Contains(with.Tools(), "persist_keywords") {
		t.Fatalf("persist_keywords not registered: %v", with.Tools())
	}
}

func TestNewServerWithoutResources(t *testing.T) {
	srv := NewServer(logging.Nop(), config.Config{Host: "127.0.0.1", Port: "0"}, nil)
	if got := srv.Tools(); len(got) != 1 || got[0] != "job_providers" {
		t.Fatalf("expected only job_providers, got %v", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(logging.Nop(), config.Config{Host: "127.0.0.1", Port: "0"}, nil)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected response: %d %q", resp.StatusCode, body)
	}
}
