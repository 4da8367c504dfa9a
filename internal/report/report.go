package report

import (
	"time"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/feedback"
	"github.com/dshills/prcritic/internal/fetch"
	"github.com/dshills/prcritic/internal/score"
)

// Version is the report schema version carried in every export.
const Version = "1.0.0"

// exportTimeLayout is the timestamp format used for exported_at.
const exportTimeLayout = "2006-01-02 15:04:05"

// Report is the full result of one analysis run. Its JSON form is the
// external-facing artifact format: a flat object with keys pr_data, analysis,
// feedback, score, exported_at, and version.
type Report struct {
	PRData     *fetch.PRData    `json:"pr_data"`
	Analysis   []analysis.Issue `json:"analysis"`
	Feedback   []feedback.Item  `json:"feedback"`
	Score      score.Result     `json:"score"`
	ExportedAt string           `json:"exported_at"`
	Version    string           `json:"version"`
}

// New assembles a report from the pipeline outputs, stamping the export
// timestamp and schema version.
func New(pr *fetch.PRData, issues []analysis.Issue, items []feedback.Item, result score.Result) *Report {
	if issues == nil {
		issues = []analysis.Issue{}
	}
	if items == nil {
		items = []feedback.Item{}
	}
	return &Report{
		PRData:     pr,
		Analysis:   issues,
		Feedback:   items,
		Score:      result,
		ExportedAt: time.Now().Format(exportTimeLayout),
		Version:    Version,
	}
}
