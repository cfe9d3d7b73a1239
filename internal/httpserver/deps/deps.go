package deps

import (
	"time"

	"github.com/M3lvz/toolsorter/internal/ai"
	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/sources/seed"
	"github.com/M3lvz/toolsorter/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedHosts []string // Host headers allowed to reach the server (empty = no check)
	AllowedCIDRS []string // IPs allowed on admin endpoints (empty = no check)
	TrustProxy   bool     // true when running behind a trusted reverse proxy
	AIRateBurst  int      // per-IP burst for AI-backed endpoints (0 = unlimited)
	AIRatePerMin int      // per-IP refill rate for AI-backed endpoints

	DataDir    string            // directory holding the JSON documents
	Catalog    *store.Catalog    // tool catalog document store
	Comments   *store.Comments   // per-entry comment lists
	Links      *store.Links      // per-entry external link lists
	Settings   *store.Settings   // OpenAI credential and model name
	Enricher   *ai.Enricher      // web-assisted enrichment for new tools
	Searcher   *ai.Searcher      // AI search phase
	Exporter   *exchange.Exporter
	Importer   *exchange.Importer
	Syncer     *gitsync.Syncer // git push/pull of the unified document
	SyncStatus *gitsync.Status // process-wide sync state record
	Seeder     *seed.Seeder    // optional starter catalog, nil when unset
}
