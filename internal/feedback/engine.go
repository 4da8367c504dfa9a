package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/providers"
)

// Source selects where feedback for a file's issue group comes from.
type Source int

const (
	// SourceTemplate renders feedback from the local template set.
	SourceTemplate Source = iota
	// SourceExternal asks the external generator per file, falling back to
	// templates for any file whose call fails.
	SourceExternal
)

const defaultExternalTimeout = 30 * time.Second

// Engine converts issues into prioritized, suggestion-bearing feedback items.
type Engine struct {
	templates *Templates
	generator providers.Generator
	timeout   time.Duration
}

// NewEngine creates a feedback engine. The generator may be nil, in which
// case SourceExternal behaves like SourceTemplate.
func NewEngine(tpl *Templates, gen providers.Generator, timeout time.Duration) *Engine {
	if tpl == nil {
		tpl = DefaultTemplates()
	}
	if timeout <= 0 {
		timeout = defaultExternalTimeout
	}
	return &Engine{templates: tpl, generator: gen, timeout: timeout}
}

// Generate produces prioritized feedback for a deduplicated issue set.
//
// Issues are grouped by file. With SourceExternal, each file group is sent to
// the external generator; any error, timeout, or malformed response degrades
// that one file to the template path without affecting the others. Failures
// are logged, never returned.
func (e *Engine) Generate(ctx context.Context, issues []analysis.Issue, source Source) []Item {
	byFile := make(map[string][]analysis.Issue)
	for _, issue := range issues {
		byFile[issue.File] = append(byFile[issue.File], issue)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	var items []Item
	for _, file := range files {
		group := byFile[file]
		if source == SourceExternal && e.generator != nil {
			external, err := e.externalFeedback(ctx, file, group)
			if err == nil {
				items = append(items, external...)
				continue
			}
			slog.Error("external feedback failed, falling back to templates",
				"file", file, "provider", e.generator.Name(), "err", err)
		}
		for _, issue := range group {
			items = append(items, e.templateFeedback(issue))
		}
	}

	return Prioritize(items)
}

// externalFeedback asks the external generator for one file's issue group.
func (e *Engine) externalFeedback(ctx context.Context, file string, issues []analysis.Issue) ([]Item, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.generator.Generate(callCtx, providers.FeedbackRequest{
		SystemPrompt: feedbackSystemPrompt,
		UserPrompt:   BuildFeedbackPrompt(file, issues),
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}
	return parseExternalFeedback(resp.Content, issues)
}

// templateFeedback renders one issue through the template path, dispatching
// on the issue's tool kind. Unknown tools get the generic fallback.
func (e *Engine) templateFeedback(issue analysis.Issue) Item {
	switch analysis.ClassifyTool(issue.Tool) {
	case analysis.KindStyleLint:
		return e.styleFeedback(issue)
	case analysis.KindSecurityScanner:
		return e.securityFeedback(issue)
	case analysis.KindComplexityAnalyzer:
		return e.complexityFeedback(issue)
	case analysis.KindBuiltinChecker:
		return e.builtinFeedback(issue)
	default:
		return e.genericFeedback(issue)
	}
}

func (e *Engine) styleFeedback(issue analysis.Issue) Item {
	message := issue.Message
	if canned, ok := e.templates.StyleMessages[issue.Code]; ok {
		message = canned
	}
	return Item{
		File:        issue.File,
		Line:        issue.Line,
		Severity:    defaultSeverity(issue.Severity, analysis.SeverityInfo),
		Category:    analysis.CategoryStyle,
		Message:     message,
		Suggestions: e.templates.StyleSuggestions[issue.Code],
		Code:        issue.Code,
		Tool:        issue.Tool,
	}
}

func (e *Engine) securityFeedback(issue analysis.Issue) Item {
	lower := strings.ToLower(issue.Message)
	var suggestions []string
	for _, ks := range e.templates.SecuritySuggestions {
		if strings.Contains(lower, ks.Keyword) {
			suggestions = ks.Suggestions
			break
		}
	}
	return Item{
		File:        issue.File,
		Line:        issue.Line,
		Severity:    defaultSeverity(issue.Severity, analysis.SeverityHigh),
		Category:    analysis.CategorySecurity,
		Message:     "Security issue: " + issue.Message,
		Suggestions: suggestions,
		TestID:      issue.TestID,
		Confidence:  issue.Confidence,
		Tool:        issue.Tool,
	}
}

func (e *Engine) complexityFeedback(issue analysis.Issue) Item {
	function := issue.Function
	if function == "" {
		function = "unknown"
	}
	return Item{
		File:        issue.File,
		Line:        issue.Line,
		Severity:    defaultSeverity(issue.Severity, analysis.SeverityMedium),
		Category:    analysis.CategoryComplexity,
		Message:     fmt.Sprintf("High complexity in %s (%d)", function, issue.Complexity),
		Suggestions: e.templates.ComplexitySuggestions,
		Complexity:  issue.Complexity,
		Tool:        issue.Tool,
	}
}

func (e *Engine) builtinFeedback(issue analysis.Issue) Item {
	category := issue.Category
	if category == "" {
		category = analysis.CategoryUnknown
	}
	return Item{
		File:        issue.File,
		Line:        issue.Line,
		Severity:    defaultSeverity(issue.Severity, analysis.SeverityLow),
		Category:    category,
		Message:     issue.Message,
		Suggestions: e.templates.BuiltinSuggestions[string(category)],
		Tool:        issue.Tool,
	}
}

func (e *Engine) genericFeedback(issue analysis.Issue) Item {
	message := issue.Message
	if message == "" {
		message = "Unknown issue"
	}
	category := issue.Category
	if category == "" {
		category = analysis.CategoryUnknown
	}
	tool := issue.Tool
	if tool == "" {
		tool = "unknown"
	}
	return Item{
		File:        issue.File,
		Line:        issue.Line,
		Severity:    defaultSeverity(issue.Severity, analysis.SeverityInfo),
		Category:    category,
		Message:     message,
		Suggestions: e.templates.GenericSuggestions,
		Tool:        tool,
	}
}

func defaultSeverity(s, fallback analysis.Severity) analysis.Severity {
	if s == "" {
		return fallback
	}
	return s
}
