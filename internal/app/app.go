package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/M3lvz/toolsorter/internal/ai"
	"github.com/M3lvz/toolsorter/internal/config"
	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/httpserver"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/scheduler"
	"github.com/M3lvz/toolsorter/internal/sources/seed"
	"github.com/M3lvz/toolsorter/internal/store"
	"github.com/M3lvz/toolsorter/internal/version"
	"github.com/M3lvz/toolsorter/internal/websearch"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	autoSync *scheduler.AutoSyncer
	seeder   *seed.Seeder
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The data directory is the only hard dependency - fail fast.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		loggerClient.Errorf("Failed to create data directory %s: %v", cfg.DataDir, err)
		os.Exit(1)
	}

	// Store saves notify the auto-syncer through this channel.
	syncTrigger := make(chan struct{}, 1)

	catalog := store.NewCatalog(cfg.DataDir, loggerClient, syncTrigger)
	comments := store.NewComments(cfg.DataDir, loggerClient, syncTrigger)
	links := store.NewLinks(cfg.DataDir, loggerClient, syncTrigger)
	settings := store.NewSettings(cfg.DataDir, loggerClient)

	// AI collaborators. Both degrade gracefully when no key is set.
	aiClient := ai.NewClient(cfg.OpenAIBaseURL, cfg.AITimeout, loggerClient)
	searchClient := websearch.New(cfg.SearchBaseURL, cfg.SearchTimeout, loggerClient)
	enricher := ai.NewEnricher(aiClient, searchClient, settings, cfg.MaxSnippets, loggerClient)
	searcher := ai.NewSearcher(aiClient, settings, loggerClient)

	exporter := exchange.NewExporter(catalog, comments, links)
	importer := exchange.NewImporter(catalog, comments, links, loggerClient)

	// Git synchronization over the configured working tree.
	syncStatus := gitsync.NewStatus()
	syncStatus.SetEnabled(cfg.AutoSync)
	git := gitsync.NewGit(cfg.SyncDir, cfg.GitTimeout, loggerClient)
	syncer := gitsync.NewSyncer(git, cfg.SyncDir, exporter, importer, syncStatus, loggerClient)
	autoSync := scheduler.NewAutoSyncer(syncer, syncStatus, loggerClient, cfg.SyncInterval, syncTrigger)

	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		seeder = seed.NewSeeder(cfg.SeedFile, catalog, loggerClient)
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		AIRateBurst:  cfg.AIRateBurst,
		AIRatePerMin: cfg.AIRatePerMin,
		DataDir:      cfg.DataDir,
		Catalog:      catalog,
		Comments:     comments,
		Links:        links,
		Settings:     settings,
		Enricher:     enricher,
		Searcher:     searcher,
		Exporter:     exporter,
		Importer:     importer,
		Syncer:       syncer,
		SyncStatus:   syncStatus,
		Seeder:       seeder,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		autoSync: autoSync,
		seeder:   seeder,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting ToolSorter v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("ToolSorter %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Apply the starter catalog before serving. Best effort: a broken
	// seed file must not block the app.
	if a.seeder != nil {
		if added, err := a.seeder.Apply(); err != nil {
			a.logger.Warn("seed apply failed, continuing without it",
				logger.Error(err))
		} else if added > 0 {
			a.logger.Info("starter catalog applied",
				logger.Int("added", added))
		}
	}

	a.autoSync.Start(ctx)
	a.logger.Info("auto-sync worker started",
		logger.Duration("interval", a.cfg.SyncInterval),
		logger.Bool("enabled", a.cfg.AutoSync))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.autoSync.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ ToolSorter stopped cleanly")
	return nil
}
