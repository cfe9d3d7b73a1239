package gitsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// SyncFileName is the well-known database file shared through the
// repository. Both ends of a sync pair must agree on it.
const SyncFileName = "toolsorter_database.json"

// Result reports one sync operation. Failures are values, never
// errors: a broken remote must not take the application down.
type Result struct {
	OK      bool             `json:"ok"`
	Message string           `json:"message"`
	Import  *exchange.Result `json:"import,omitempty"`
}

// Syncer implements push/pull of the unified document over a git
// working tree. Every outcome, manual or scheduled, lands in the
// shared status record.
type Syncer struct {
	git      Runner
	dir      string
	exporter *exchange.Exporter
	importer *exchange.Importer
	status   *Status
	logger   logger.Logger
}

func NewSyncer(git Runner, dir string, exporter *exchange.Exporter, importer *exchange.Importer, status *Status, log logger.Logger) *Syncer {
	return &Syncer{
		git:      git,
		dir:      dir,
		exporter: exporter,
		importer: importer,
		status:   status,
		logger:   log,
	}
}

// Push exports everything into the sync file, commits and publishes
// it. "Nothing to commit" counts as success: the remote already holds
// the current state.
func (s *Syncer) Push(ctx context.Context) Result {
	res := s.push(ctx)
	s.status.Record(res)
	if res.OK {
		s.logger.Info("sync push finished", logger.String("message", res.Message))
	} else {
		s.logger.Warn("sync push failed", logger.String("message", res.Message))
	}
	return res
}

func (s *Syncer) push(ctx context.Context) Result {
	if !s.isRepo(ctx) {
		return Result{Message: "sync directory is not a git repository"}
	}

	doc := s.exporter.Export()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Result{Message: fmt.Sprintf("encoding export: %v", err)}
	}
	path := filepath.Join(s.dir, SyncFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return Result{Message: fmt.Sprintf("writing %s: %v", SyncFileName, err)}
	}

	if _, err := s.git.Run(ctx, "add", SyncFileName); err != nil {
		return Result{Message: fmt.Sprintf("git add failed: %v", err)}
	}

	message := fmt.Sprintf("Data sync: %s - %d tools",
		time.Now().Format("2006-01-02 15:04:05"), doc.Metadata.TotalTools)
	out, err := s.git.Run(ctx, "commit", "-m", message)
	if err != nil {
		if strings.Contains(strings.ToLower(out), "nothing to commit") {
			return Result{OK: true, Message: "nothing to sync, already up to date"}
		}
		return Result{Message: fmt.Sprintf("git commit failed: %v", err)}
	}

	if _, err := s.git.Run(ctx, "push"); err != nil {
		return Result{Message: fmt.Sprintf("git push failed: %v", err)}
	}
	return Result{OK: true, Message: "synchronized: " + message}
}

// Pull fetches the remote state and, when the sync file is present,
// merges it through the standard additive import. A repository that
// has never been pushed to is fine: success with an informational
// message.
func (s *Syncer) Pull(ctx context.Context) Result {
	res := s.pull(ctx)
	s.status.Record(res)
	if res.OK {
		s.logger.Info("sync pull finished", logger.String("message", res.Message))
	} else {
		s.logger.Warn("sync pull failed", logger.String("message", res.Message))
	}
	return res
}

func (s *Syncer) pull(ctx context.Context) Result {
	if !s.isRepo(ctx) {
		return Result{Message: "sync directory is not a git repository"}
	}

	if _, err := s.git.Run(ctx, "pull"); err != nil {
		return Result{Message: fmt.Sprintf("git pull failed: %v", err)}
	}

	data, err := os.ReadFile(filepath.Join(s.dir, SyncFileName))
	if errors.Is(err, os.ErrNotExist) {
		return Result{OK: true, Message: "no sync file in the repository yet"}
	}
	if err != nil {
		return Result{Message: fmt.Sprintf("reading %s: %v", SyncFileName, err)}
	}

	imported := s.importer.Import(data)
	return Result{
		OK: true,
		Message: fmt.Sprintf("merged %d tools, %d comments, %d links",
			imported.ToolsImported, imported.CommentsImported, imported.LinksImported),
		Import: &imported,
	}
}

func (s *Syncer) isRepo(ctx context.Context) bool {
	_, err := s.git.Run(ctx, "status", "--porcelain")
	return err == nil
}
