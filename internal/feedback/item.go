package feedback

import "github.com/dshills/prcritic/internal/analysis"

// Item is a presentation-ready, suggestion-bearing rendering of one Issue.
type Item struct {
	File        string            `json:"file"`
	Line        int               `json:"line"`
	Severity    analysis.Severity `json:"severity"`
	Category    analysis.Category `json:"category"`
	Message     string            `json:"message"`
	Suggestions []string          `json:"suggestions"`
	Tool        string            `json:"tool"`

	// Pass-through fields, populated depending on the source tool.
	Code       string `json:"code,omitempty"`
	Complexity int    `json:"complexity,omitempty"`
	TestID     string `json:"test_id,omitempty"`
	Confidence string `json:"confidence,omitempty"`
}
