package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultGitHubAPIURL = "https://api.github.com"

// GitHub fetches pull requests through the GitHub REST API.
type GitHub struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewGitHub creates a GitHub fetcher. Requires GITHUB_TOKEN.
func NewGitHub() (*GitHub, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultGitHubAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &GitHub{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (g *GitHub) Name() string { return "github" }

type githubPR struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	State        string     `json:"state"`
	ChangedFiles int        `json:"changed_files"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	Commits      int        `json:"commits"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	User         githubUser `json:"user"`
}

type githubUser struct {
	Login string `json:"login"`
}

type githubFile struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch"`
}

// FetchPR retrieves PR metadata and per-file diffs. repo is "owner/name".
func (g *GitHub) FetchPR(ctx context.Context, repo string, id int) (*PRData, error) {
	var pr githubPR
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", g.apiURL, repo, id)
	if err := g.getJSON(ctx, url, &pr); err != nil {
		return nil, err
	}

	var files []githubFile
	url = fmt.Sprintf("%s/repos/%s/pulls/%d/files", g.apiURL, repo, id)
	if err := g.getJSON(ctx, url, &files); err != nil {
		return nil, err
	}

	diffs := make([]FileDiff, 0, len(files))
	for _, f := range files {
		diffs = append(diffs, FileDiff{File: f.Filename, Patch: f.Patch})
	}

	return &PRData{
		ID:           pr.Number,
		Title:        pr.Title,
		Body:         pr.Body,
		Author:       pr.User.Login,
		State:        pr.State,
		ChangedFiles: pr.ChangedFiles,
		Additions:    pr.Additions,
		Deletions:    pr.Deletions,
		Commits:      pr.Commits,
		CreatedAt:    pr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    pr.UpdatedAt.Format(time.RFC3339),
		Diffs:        diffs,
	}, nil
}

func (g *GitHub) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := g.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 404 {
		return fmt.Errorf("not found: %s", url)
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("authentication failed: %s", string(body))
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
