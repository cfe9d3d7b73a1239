package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataDir  string // directory holding the JSON documents (tools, comments, links, config)
	SeedFile string // optional starter-catalog YAML (empty = seeding disabled)

	SyncDir      string        // git worktree used for database push/pull
	SyncInterval time.Duration // auto-sync cadence (default: 5m)
	AutoSync     bool          // start with auto-sync enabled
	GitTimeout   time.Duration // timeout per git command (default: 60s)

	OpenAIBaseURL string        // chat-completion endpoint base (overridable for tests)
	AITimeout     time.Duration // timeout for chat-completion requests (default: 60s)

	SearchBaseURL string        // instant-answer endpoint base (overridable for tests)
	SearchTimeout time.Duration // timeout for web snippet lookups (default: 10s)
	MaxSnippets   int           // web snippets fed to enrichment (default: 5)

	AllowedHosts []string // Host headers allowed to reach the server (empty = no check)
	AllowedCIDRS []string // IPs/CIDRs allowed on admin endpoints (empty = no check)
	TrustProxy   bool     // resolve client IPs from proxy headers
	AIRateBurst  int      // per-IP burst for AI-backed endpoints (0 = unlimited)
	AIRatePerMin int      // per-IP refill rate for AI-backed endpoints
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("TOOLSORTER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("TOOLSORTER_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("TOOLSORTER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TOOLSORTER_PRETTY_LOG", true),

		// Storage
		DataDir:  getenv("TOOLSORTER_DATA_DIR", "data"),
		SeedFile: getenv("TOOLSORTER_SEED_FILE", ""), // Optional, empty = no starter catalog

		// Git synchronization
		SyncDir:      getenv("TOOLSORTER_SYNC_DIR", "."),
		SyncInterval: mustDuration("TOOLSORTER_SYNC_INTERVAL", 5*time.Minute),
		AutoSync:     mustBool("TOOLSORTER_AUTO_SYNC", false),
		GitTimeout:   mustDuration("TOOLSORTER_GIT_TIMEOUT", 60*time.Second),

		// External services. The base URL honors the conventional OPENAI_BASE_URL
		// variable when the prefixed one is unset.
		OpenAIBaseURL: getenv("TOOLSORTER_OPENAI_BASE_URL", getenv("OPENAI_BASE_URL", "https://api.openai.com/v1")),
		AITimeout:     mustDuration("TOOLSORTER_AI_TIMEOUT", 60*time.Second),
		SearchBaseURL: getenv("TOOLSORTER_SEARCH_BASE_URL", "https://api.duckduckgo.com"),
		SearchTimeout: mustDuration("TOOLSORTER_SEARCH_TIMEOUT", 10*time.Second),
		MaxSnippets:   getenvInt("TOOLSORTER_MAX_SNIPPETS", 5),

		// Access hardening (all optional; a single-user install needs none of it)
		AllowedHosts: getenvList("TOOLSORTER_ALLOWED_HOSTS"),
		AllowedCIDRS: getenvList("TOOLSORTER_ALLOWED_CIDRS"),
		TrustProxy:   mustBool("TOOLSORTER_TRUST_PROXY", false),
		AIRateBurst:  getenvInt("TOOLSORTER_AI_RATE_BURST", 0),
		AIRatePerMin: getenvInt("TOOLSORTER_AI_RATE_PER_MIN", 10),
	}

	// Log config only in debug mode (no secrets live here; the API key is
	// stored in the settings document, not the environment config)
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", *cfg)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvList splits a comma-separated env value into trimmed entries.
// Surrounding quotes are stripped so `"a.example.com", "b.example.com"` works too.
func getenvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
