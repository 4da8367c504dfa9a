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

const defaultBitbucketAPIURL = "https://api.bitbucket.org/2.0"

// Bitbucket fetches pull requests through the Bitbucket Cloud REST API.
type Bitbucket struct {
	username string
	password string
	apiURL   string
	httpCli  *http.Client
}

// NewBitbucket creates a Bitbucket fetcher. Requires BITBUCKET_USERNAME and
// BITBUCKET_APP_PASSWORD.
func NewBitbucket() (*Bitbucket, error) {
	username := os.Getenv("BITBUCKET_USERNAME")
	password := os.Getenv("BITBUCKET_APP_PASSWORD")
	if username == "" || password == "" {
		return nil, fmt.Errorf("BITBUCKET_USERNAME and BITBUCKET_APP_PASSWORD environment variables are not set")
	}

	apiURL := os.Getenv("BITBUCKET_API_URL")
	if apiURL == "" {
		apiURL = defaultBitbucketAPIURL
	}

	return &Bitbucket{
		username: username,
		password: password,
		apiURL:   strings.TrimRight(apiURL, "/"),
		httpCli:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (b *Bitbucket) Name() string { return "bitbucket" }

type bitbucketPR struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
	Summary struct {
		Raw string `json:"raw"`
	} `json:"summary"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// FetchPR retrieves PR metadata and diffs. repo is "workspace/slug".
func (b *Bitbucket) FetchPR(ctx context.Context, repo string, id int) (*PRData, error) {
	var pr bitbucketPR
	url := fmt.Sprintf("%s/repositories/%s/pullrequests/%d", b.apiURL, repo, id)
	body, err := b.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	rawDiff, err := b.get(ctx, url+"/diff")
	if err != nil {
		return nil, err
	}
	diffs := splitDiff(string(rawDiff))

	return &PRData{
		ID:           pr.ID,
		Title:        pr.Title,
		Body:         pr.Summary.Raw,
		Author:       pr.Author.DisplayName,
		State:        pr.State,
		ChangedFiles: len(diffs),
		CreatedAt:    pr.CreatedOn.Format(time.RFC3339),
		UpdatedAt:    pr.UpdatedOn.Format(time.RFC3339),
		Diffs:        diffs,
	}, nil
}

func (b *Bitbucket) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(b.username, b.password)

	resp, err := b.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 404 {
		return nil, fmt.Errorf("not found: %s", url)
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return nil, fmt.Errorf("authentication failed: %s", string(body))
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("Bitbucket API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
