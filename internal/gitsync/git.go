// Package gitsync shares the catalog through a git repository: pushes
// write the unified export as a well-known file and commit it, pulls
// merge that file back through the standard import path.
package gitsync

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/M3lvz/toolsorter/internal/logger"
)

// Runner abstracts git command execution so the sync flows can be
// tested without a git binary.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Git runs git commands in a fixed working directory with a
// per-command timeout.
type Git struct {
	dir     string
	timeout time.Duration
	logger  logger.Logger
}

func NewGit(dir string, timeout time.Duration, log logger.Logger) *Git {
	return &Git{
		dir:     dir,
		timeout: timeout,
		logger:  log,
	}
}

// Run executes one git command and returns its combined output.
// The error keeps the output attached: git writes its diagnostics to
// the streams, not the exit code.
func (g *Git) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug("executing git",
		logger.String("args", strings.Join(args, " ")),
		logger.String("dir", g.dir))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w: %s", args[0], err, output)
	}
	return output, nil
}
