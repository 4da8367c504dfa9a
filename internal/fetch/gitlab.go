package fetch

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// GitLab fetches merge requests through the GitLab API.
type GitLab struct {
	client *gitlab.Client
}

// NewGitLab creates a GitLab fetcher. Requires GITLAB_TOKEN; GITLAB_URL
// selects a self-hosted instance.
func NewGitLab() (*GitLab, error) {
	token := os.Getenv("GITLAB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITLAB_TOKEN environment variable is not set")
	}

	var opts []gitlab.ClientOptionFunc
	if instanceURL := os.Getenv("GITLAB_URL"); instanceURL != "" {
		baseURL := strings.TrimSuffix(instanceURL, "/") + "/api/v4"
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return &GitLab{client: client}, nil
}

func (g *GitLab) Name() string { return "gitlab" }

// FetchPR retrieves merge request metadata and per-file diffs. repo is the
// project path ("group/project") or numeric project ID; id is the MR IID.
func (g *GitLab) FetchPR(ctx context.Context, repo string, id int) (*PRData, error) {
	mr, _, err := g.client.MergeRequests.GetMergeRequest(repo, id, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request: %w", err)
	}

	mrDiffs, _, err := g.client.MergeRequests.ListMergeRequestDiffs(repo, id,
		&gitlab.ListMergeRequestDiffsOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request diffs: %w", err)
	}

	diffs := make([]FileDiff, 0, len(mrDiffs))
	for _, d := range mrDiffs {
		path := d.NewPath
		if path == "" {
			path = d.OldPath
		}
		diffs = append(diffs, FileDiff{File: path, Patch: d.Diff})
	}

	pr := &PRData{
		ID:           mr.IID,
		Title:        mr.Title,
		Body:         mr.Description,
		State:        mr.State,
		ChangedFiles: len(diffs),
		Diffs:        diffs,
	}
	if mr.Author != nil {
		pr.Author = mr.Author.Username
	}
	if mr.CreatedAt != nil {
		pr.CreatedAt = mr.CreatedAt.Format(time.RFC3339)
	}
	if mr.UpdatedAt != nil {
		pr.UpdatedAt = mr.UpdatedAt.Format(time.RFC3339)
	}
	// ChangesCount is a string like "5" or "5+" when truncated.
	if n, err := strconv.Atoi(strings.TrimSuffix(mr.ChangesCount, "+")); err == nil {
		pr.ChangedFiles = n
	}
	return pr, nil
}
