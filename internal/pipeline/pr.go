// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// PullRequest describes the PR opened for a pushed submission branch.
type PullRequest struct {
	Title string
	Head  string
	Base  string
	Body  string
}

// PullRequester opens a pull request and returns its HTML URL.
type PullRequester interface {
	Create(ctx context.Context, pr PullRequest) (string, error)
}

// GitHubPR creates pull requests on a fixed owner/repo via the GitHub API.
type GitHubPR struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubPR builds a token-authenticated GitHub PR client.
func NewGitHubPR(token, owner, repo string) *GitHubPR {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubPR{
		client: github.NewClient(oauth2.NewClient(context.Background(), src)),
		owner:  owner,
		repo:   repo,
	}
}

// Create opens the pull request and returns its HTML URL.
func (g *GitHubPR) Create(ctx context.Context, pr PullRequest) (string, error) {
	created, _, err := g.client.PullRequests.Create(ctx, g.owner, g.repo, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
		Body:  github.String(pr.Body),
	})
	if err != nil {
		return "", fmt.Errorf("create pull request %q: %w", pr.Title, err)
	}
	return created.GetHTMLURL(), nil
}
