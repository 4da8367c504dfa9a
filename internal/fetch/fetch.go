package fetch

import (
	"context"
	"fmt"
	"strings"
)

// FileDiff is one changed file and its unified diff text.
type FileDiff struct {
	File  string `json:"file"`
	Patch string `json:"changes"`
}

// PRData is the metadata and diff set for one pull/merge request.
type PRData struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body,omitempty"`
	Author       string     `json:"author"`
	State        string     `json:"state"`
	ChangedFiles int        `json:"changed_files"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	Commits      int        `json:"commits"`
	CreatedAt    string     `json:"created_at,omitempty"`
	UpdatedAt    string     `json:"updated_at,omitempty"`
	Diffs        []FileDiff `json:"diffs"`
}

// Fetcher retrieves a pull request from a hosting platform.
type Fetcher interface {
	FetchPR(ctx context.Context, repo string, id int) (*PRData, error)
	Name() string
}

// New creates a fetcher by platform name.
func New(platform string) (Fetcher, error) {
	switch platform {
	case "github":
		return NewGitHub()
	case "gitlab":
		return NewGitLab()
	case "bitbucket":
		return NewBitbucket()
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}

// splitDiff breaks a combined unified diff into per-file patches.
func splitDiff(diff string) []FileDiff {
	var diffs []FileDiff
	var current *FileDiff
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.Patch = body.String()
			diffs = append(diffs, *current)
			body.Reset()
		}
	}

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
			current = &FileDiff{File: fileFromDiffHeader(line)}
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()
	return diffs
}

// fileFromDiffHeader extracts the b-side path from a "diff --git a/x b/x"
// header line.
func fileFromDiffHeader(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return ""
	}
	return strings.TrimPrefix(fields[3], "b/")
}
