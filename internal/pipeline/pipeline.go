// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline runs the submission flow against the gallery repository:
// validate, clone into a throwaway workspace, branch, write the theme record,
// commit, push, and open a pull request. Every step is sequential and any
// failure aborts the remaining steps; the workspace is always removed.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"themegate/internal/models"
	"themegate/internal/theme"
)

// Config holds the fixed parameters of the target gallery repository and
// the bot identity used for commits and pushes.
type Config struct {
	RepoURL     string // clone URL of the gallery repository
	BaseBranch  string // PR target branch, e.g. "main"
	DataDir     string // repo-relative theme data directory, e.g. "src/data/themes"
	BotName     string // commit author name
	BotEmail    string // commit author email
	BotUsername string // push credential username
	Token       string // push credential; no auth is attached when empty
	WorkRoot    string // parent for workspaces; empty means os.TempDir()
	CloneDepth  int    // shallow clone depth; 0 clones full history
}

// Result reports what a successful run produced.
type Result struct {
	Branch   string
	FileName string
	RelPath  string
	PRURL    string
	Record   models.ThemeRecord
}

// Runner executes submission runs against a fixed repository configuration.
// It is safe for concurrent use: every run works in its own workspace and
// derives its names from a per-run timestamp.
type Runner struct {
	cfg Config
	prs PullRequester
}

// New creates a Runner. The PullRequester is injected so tests can run the
// git steps against a local repository without a real PR API.
func New(cfg Config, prs PullRequester) *Runner {
	return &Runner{cfg: cfg, prs: prs}
}

// Run executes the full pipeline for one submission. A *theme.ValidationError
// is returned before any filesystem or network work happens; any later error
// propagates from the failing step unmodified apart from context wrapping.
// The workspace directory is removed on every path, success or failure.
func (r *Runner) Run(ctx context.Context, sub *models.ThemeSubmission) (*Result, error) {
	if err := theme.Validate(sub); err != nil {
		return nil, err
	}

	// Per-run timestamp: concurrent submissions of the same theme still get
	// distinct branch and file names.
	now := time.Now()
	branch := theme.BranchName(sub.ThemeName, now)
	fileName := theme.FileName(sub.ThemeName, now)
	relPath := path.Join(r.cfg.DataDir, fileName)

	dir, err := os.MkdirTemp(r.cfg.WorkRoot, "theme-submission-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			slog.Warn("workspace cleanup failed", "dir", dir, "error", rmErr)
		}
	}()

	slog.Info("cloning gallery repository",
		"url", r.cfg.RepoURL,
		"dir", dir,
		"depth", r.cfg.CloneDepth,
	)
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          r.cfg.RepoURL,
		Depth:        r.cfg.CloneDepth,
		SingleBranch: true,
		Auth:         r.auth(),
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", r.cfg.RepoURL, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	slog.Info("creating submission branch", "branch", branch)
	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", branch, err)
	}

	record := theme.NewRecord(sub)
	if err := writeRecord(dir, relPath, record); err != nil {
		return nil, err
	}

	// Stage exactly the new data file; nothing else in the clone changes.
	if _, err := wt.Add(relPath); err != nil {
		return nil, fmt.Errorf("stage %s: %w", relPath, err)
	}

	slog.Info("committing theme record", "file", relPath, "author", r.cfg.BotName)
	if _, err := wt.Commit(theme.CommitMessage(sub.ThemeName), &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.cfg.BotName,
			Email: r.cfg.BotEmail,
			When:  now,
		},
	}); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	slog.Info("pushing submission branch", "branch", branch)
	refSpec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	if err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitcfg.RefSpec{refSpec},
		Auth:       r.auth(),
	}); err != nil {
		return nil, fmt.Errorf("push %s: %w", branch, err)
	}

	slog.Info("opening pull request", "title", theme.PRTitle(sub.ThemeName), "base", r.cfg.BaseBranch)
	prURL, err := r.prs.Create(ctx, PullRequest{
		Title: theme.PRTitle(sub.ThemeName),
		Head:  branch,
		Base:  r.cfg.BaseBranch,
		Body:  theme.PRBody(sub),
	})
	if err != nil {
		// The pushed branch is left behind on purpose: maintainers can still
		// open the PR by hand, and the next run uses a fresh branch name.
		return nil, err
	}

	return &Result{
		Branch:   branch,
		FileName: fileName,
		RelPath:  relPath,
		PRURL:    prURL,
		Record:   record,
	}, nil
}

// auth returns push/clone credentials, or nil when no token is configured
// (local and test repositories need none).
func (r *Runner) auth() transport.AuthMethod {
	if r.cfg.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: r.cfg.BotUsername,
		Password: r.cfg.Token,
	}
}

// writeRecord serializes the record as pretty-printed JSON at the
// repo-relative path inside the workspace, creating the data directory
// if the clone does not have it yet.
func writeRecord(workspace, relPath string, record models.ThemeRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')

	abs := filepath.Join(workspace, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
