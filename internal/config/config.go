package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	Indeed   struct {
		Publisher string
		Version   string
		Country   string
		Channel   string
		BaseURL   string
		Limit     int
	} // Indeed publisher API
	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
	} // Adzuna API credentials
	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	}
	Sheets struct {
		CredentialsPath string
	}
	RedisURL  string
	Discovery struct {
		Schedule string // cron spec, empty disables scheduled runs
		Keywords []string
		Location string
	}
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.Indeed.Publisher = os.Getenv("INDEED_PUBLISHER")
	cfg.Indeed.Version = envOr("INDEED_VERSION", "2")
	cfg.Indeed.Country = envOr("INDEED_COUNTRY", "us")
	cfg.Indeed.Channel = os.Getenv("INDEED_CHANNEL")
	cfg.Indeed.BaseURL = os.Getenv("INDEED_BASE_URL")

	var invalid []string

	if v := os.Getenv("INDEED_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			invalid = append(invalid, fmt.Sprintf("INDEED_LIMIT must be a positive integer, got %q", v))
		} else {
			cfg.Indeed.Limit = n
		}
	}

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.Country = envOr("ADZUNA_COUNTRY", "us")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.Discovery.Schedule = os.Getenv("DISCOVERY_SCHEDULE")
	cfg.Discovery.Keywords = splitList(os.Getenv("DISCOVERY_KEYWORDS"))
	cfg.Discovery.Location = os.Getenv("DISCOVERY_LOCATION")

	if cfg.Discovery.Schedule != "" && len(cfg.Discovery.Keywords) == 0 {
		invalid = append(invalid, "DISCOVERY_KEYWORDS is required when DISCOVERY_SCHEDULE is set")
	}

	var missingVars []string

	if cfg.Neo4j.URI == "" {
		missingVars = append(missingVars, "NEO4J_URI")
	}

	if cfg.Neo4j.Username == "" {
		missingVars = append(missingVars, "NEO4J_USERNAME")
	}

	if cfg.Neo4j.Password == "" {
		missingVars = append(missingVars, "NEO4J_PASSWORD")
	}

	if len(missingVars) > 0 {
		invalid = append(invalid, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("%s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
