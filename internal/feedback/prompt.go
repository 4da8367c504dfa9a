package feedback

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/redact"
)

const feedbackSystemPrompt = `You are an expert code reviewer. Provide constructive, actionable feedback for code issues. Focus on code quality, security, performance, and maintainability.

You MUST respond with ONLY a JSON object. No markdown, no explanation, no preamble.

The object must have this exact structure:
{
  "summary": "Brief overview of issues",
  "suggestions": [
    {
      "issue_id": 1,
      "suggestion": "Specific suggestion",
      "priority": "high|medium|low",
      "reasoning": "Why this fix is important"
    }
  ],
  "overall_assessment": "Overall code quality assessment",
  "priority_fixes": ["List of high-priority fixes"]
}`

// BuildFeedbackPrompt assembles the user prompt for one file's issue group.
// Issue messages are redacted before leaving the process.
func BuildFeedbackPrompt(file string, issues []analysis.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Code Review Analysis for: %s\n\nIssues Found:\n", file)

	for i, issue := range issues {
		issue = issue.Normalize()
		fmt.Fprintf(&b, "\n%d. %s - %s\n", i+1,
			strings.ToUpper(string(issue.Category)),
			strings.ToUpper(string(issue.Severity)))
		fmt.Fprintf(&b, "   Tool: %s\n", issue.Tool)
		fmt.Fprintf(&b, "   Line: %d\n", issue.Line)
		fmt.Fprintf(&b, "   Message: %s\n", redact.Secrets(issue.Message))
		if issue.Code != "" {
			fmt.Fprintf(&b, "   Code: %s\n", issue.Code)
		}
		if issue.Complexity != 0 {
			fmt.Fprintf(&b, "   Complexity: %d\n", issue.Complexity)
		}
		if issue.Function != "" {
			fmt.Fprintf(&b, "   Function: %s\n", issue.Function)
		}
	}

	b.WriteString("\nProvide a brief summary of the main issues, a specific suggestion for each issue, and an overall code quality assessment.\n")
	return b.String()
}

// externalResponse is the JSON structure the external generator returns.
type externalResponse struct {
	Summary       string               `json:"summary"`
	Suggestions   []externalSuggestion `json:"suggestions"`
	Assessment    string               `json:"overall_assessment"`
	PriorityFixes []string             `json:"priority_fixes"`
}

type externalSuggestion struct {
	IssueID    int    `json:"issue_id"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
	Reasoning  string `json:"reasoning"`
}

// parseExternalFeedback converts a raw model response into feedback items
// bound to the source issues. Any malformed payload is an error; the caller
// falls back to templates for this file.
func parseExternalFeedback(content string, issues []analysis.Issue) ([]Item, error) {
	content = extractJSONObject(content)

	var resp externalResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if resp.Summary == "" && len(resp.Suggestions) == 0 && resp.Assessment == "" {
		return nil, fmt.Errorf("response carries no feedback")
	}

	var file string
	if len(issues) > 0 {
		file = issues[0].File
	}

	var items []Item
	if resp.Summary != "" {
		items = append(items, Item{
			File:     file,
			Severity: analysis.SeverityInfo,
			Category: "ai_summary",
			Message:  "AI Analysis: " + resp.Summary,
			Tool:     "ai",
		})
	}

	for _, s := range resp.Suggestions {
		idx := s.IssueID - 1
		if idx < 0 || idx >= len(issues) {
			continue
		}
		source := issues[idx]
		severity := analysis.Severity(s.Priority)
		if severity == "" {
			severity = analysis.SeverityMedium
		}
		var reasons []string
		if s.Reasoning != "" {
			reasons = []string{s.Reasoning}
		}
		items = append(items, Item{
			File:        source.File,
			Line:        source.Line,
			Severity:    severity,
			Category:    "ai_suggestion",
			Message:     s.Suggestion,
			Suggestions: reasons,
			Tool:        "ai",
		})
	}

	if resp.Assessment != "" {
		items = append(items, Item{
			File:        file,
			Severity:    analysis.SeverityInfo,
			Category:    "ai_assessment",
			Message:     "Overall Assessment: " + resp.Assessment,
			Suggestions: resp.PriorityFixes,
			Tool:        "ai",
		})
	}

	return items, nil
}

// extractJSONObject strips markdown code fences and any prose surrounding
// the outermost JSON object.
func extractJSONObject(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) >= 2 {
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end--
			}
			content = strings.Join(lines[1:end], "\n")
		}
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}
	return content
}
